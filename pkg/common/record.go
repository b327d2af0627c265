package common

import (
	"encoding/json"
	"strings"
)

// OrganizationRecord is the input shape the analysis core consumes.
// Records missing ID are skipped during extraction; everything else is
// optional because filings data is heterogeneous and incomplete.
type OrganizationRecord struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category,omitempty"`
	BoardMembers         []BoardMember   `json:"board_members,omitempty"`
	KeyPersonnel         []Personnel     `json:"key_personnel,omitempty"`
	FundingRelationships []FundingRecord `json:"funding_relationships,omitempty"`
}

// BoardMember is one board roster entry. Upstream sources supply board
// members either as plain strings, optionally formatted "Name (Position)",
// or as {name, position} objects; both decode into this one shape.
type BoardMember struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// UnmarshalJSON accepts both the string and the object encoding.
func (b *BoardMember) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		b.Name, b.Position = SplitNamePosition(raw)
		return nil
	}

	type plain BoardMember
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BoardMember(p)
	return nil
}

// SplitNamePosition splits a "Name (Position)" string into its parts.
// Strings without a trailing parenthesized position come back unchanged
// with an empty position.
func SplitNamePosition(raw string) (name, position string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, ")") {
		return raw, ""
	}
	open := strings.LastIndex(raw, "(")
	if open <= 0 {
		return raw, ""
	}
	name = strings.TrimSpace(raw[:open])
	position = strings.TrimSpace(raw[open+1 : len(raw)-1])
	if name == "" {
		return raw, ""
	}
	return name, position
}

// Personnel is one key-personnel entry.
type Personnel struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// FundingRecord is one outgoing grant or funding transaction.
type FundingRecord struct {
	RecipientName string  `json:"recipient_name"`
	RecipientID   string  `json:"recipient_id,omitempty"`
	Amount        float64 `json:"amount"`
	Year          int     `json:"year,omitempty"`
	Purpose       string  `json:"purpose,omitempty"`
}
