// Package pagination normalizes page and limit query parameters.
package pagination

import (
	"github.com/gofiber/fiber/v2"
)

// Bounds are the default and maximum page size of one listing
type Bounds struct {
	Default int
	Max     int
}

// AuditBounds applies to the audit log listing
var AuditBounds = Bounds{Default: 20, Max: 100}

// ReceiptBounds applies to the recent receipts listing
var ReceiptBounds = Bounds{Default: 50, Max: 200}

// Clamp maps a missing or non-positive limit to the default and caps it at Max
func (b Bounds) Clamp(limit int) int {
	if limit < 1 {
		limit = b.Default
	}
	if b.Max > 0 && limit > b.Max {
		limit = b.Max
	}
	return limit
}

// Params represents pagination parameters
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// FromQuery reads ?page= and ?limit= within b
func FromQuery(c *fiber.Ctx, b Bounds) *Params {
	return NewParams(c.QueryInt("page", 1), c.QueryInt("limit", b.Default), b)
}

// NewParams normalizes a page/limit pair
func NewParams(page, limit int, b Bounds) *Params {
	if page < 1 {
		page = 1
	}
	limit = b.Clamp(limit)

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Page is one page of rows plus its metadata
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta *Meta `json:"meta"`
}

// NewPage wraps rows fetched with params
func NewPage[T any](rows []T, params *Params, total int64) *Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{
		Data: rows,
		Meta: GetMeta(params, total),
	}
}
