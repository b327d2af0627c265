package common

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBoardMemberUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want BoardMember
	}{
		{
			name: "object form",
			in:   `{"name": "Jane Smith", "position": "Chair"}`,
			want: BoardMember{Name: "Jane Smith", Position: "Chair"},
		},
		{
			name: "bare string",
			in:   `"Jane Smith"`,
			want: BoardMember{Name: "Jane Smith"},
		},
		{
			name: "string with position suffix",
			in:   `"Jane Smith (Board Chair)"`,
			want: BoardMember{Name: "Jane Smith", Position: "Board Chair"},
		},
		{
			name: "object without position",
			in:   `{"name": "Tom Baker"}`,
			want: BoardMember{Name: "Tom Baker"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got BoardMember
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestOrganizationRecordMixedBoardEncodings(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "org-a",
		"name": "Alpha",
		"board_members": [
			"Jane Smith (Chair)",
			{"name": "Tom Baker", "position": "Treasurer"},
			"Elena Vasquez"
		]
	}`

	var org OrganizationRecord
	if err := json.Unmarshal([]byte(raw), &org); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []BoardMember{
		{Name: "Jane Smith", Position: "Chair"},
		{Name: "Tom Baker", Position: "Treasurer"},
		{Name: "Elena Vasquez"},
	}
	if !reflect.DeepEqual(org.BoardMembers, want) {
		t.Fatalf("board members = %+v, want %+v", org.BoardMembers, want)
	}
}

func TestSplitNamePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in           string
		wantName     string
		wantPosition string
	}{
		{"Jane Smith (Chair)", "Jane Smith", "Chair"},
		{"Jane Smith", "Jane Smith", ""},
		{"  Jane Smith (Vice Chair)  ", "Jane Smith", "Vice Chair"},
		{"(Chair)", "(Chair)", ""},
		{"Jane (Smith) (Chair)", "Jane (Smith)", "Chair"},
		{"", "", ""},
	}

	for _, tc := range tests {
		name, position := SplitNamePosition(tc.in)
		if name != tc.wantName || position != tc.wantPosition {
			t.Fatalf("SplitNamePosition(%q) = (%q, %q), want (%q, %q)",
				tc.in, name, position, tc.wantName, tc.wantPosition)
		}
	}
}

func TestPersonOrgCount(t *testing.T) {
	t.Parallel()

	p := Person{
		Name: "Jane Smith",
		Affiliations: []Affiliation{
			{OrgID: "org-a", Role: RoleBoard},
			{OrgID: "org-a", Role: RoleStaff},
			{OrgID: "org-b", Role: RoleBoard},
		},
	}
	if got := p.OrgCount(); got != 2 {
		t.Fatalf("OrgCount = %d, want 2", got)
	}
}
