package services

import (
	"strings"
)

// ReceiptLine is one "Label: value" row of a receipt
type ReceiptLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Receipt is the human-readable summary returned by a financial operation
type Receipt struct {
	Title     string        `json:"title"`
	Reference string        `json:"reference,omitempty"`
	Lines     []ReceiptLine `json:"lines"`
}

func newReceipt(title, reference string) *Receipt {
	return &Receipt{Title: title, Reference: reference}
}

func (r *Receipt) add(label, value string) *Receipt {
	r.Lines = append(r.Lines, ReceiptLine{Label: label, Value: value})
	return r
}

// Text renders the receipt as plain text, one line per row
func (r *Receipt) Text() string {
	var b strings.Builder
	b.WriteString(r.Title)
	for _, line := range r.Lines {
		b.WriteString("\n")
		b.WriteString(line.Label)
		b.WriteString(": ")
		b.WriteString(line.Value)
	}
	return b.String()
}

// Value returns the value of the first line with label, or ""
func (r *Receipt) Value(label string) string {
	for _, line := range r.Lines {
		if line.Label == label {
			return line.Value
		}
	}
	return ""
}
