package repository

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are persisted as decimal text and exposed as float64.

func decimalText(f float64) string {
	return decimal.NewFromFloat(f).String()
}

func decimalFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// nullableText stores nil and "" as NULL.
func nullableText(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringValue reads a nullable text column; empty and NULL both become nil.
func stringValue(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

type updateSet struct {
	cols []string
	args []any
}

func (u *updateSet) set(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

func (u *updateSet) setString(col string, p *string) {
	if p != nil {
		u.set(col, *p)
	}
}

func (u *updateSet) setDecimal(col string, p *float64) {
	if p != nil {
		u.set(col, decimalText(*p))
	}
}

func (u *updateSet) setNotes(col string, p *string) {
	if p != nil {
		u.set(col, nullableText(p))
	}
}

func (u *updateSet) empty() bool {
	return len(u.cols) == 0
}

func (u *updateSet) clause() string {
	return strings.Join(u.cols, ", ")
}
