package queue

import (
	"reflect"
	"testing"

	"github.com/seaotterie/grantgraph/pkg/common"
)

func orgWithBoard(id string, boardSize int) common.OrganizationRecord {
	members := make([]common.BoardMember, boardSize)
	for i := range members {
		members[i] = common.BoardMember{Name: "Member"}
	}
	return common.OrganizationRecord{ID: id, BoardMembers: members}
}

func TestTopOrganizations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		boards  map[string]int
		order   []string
		k       int
		wantIDs []string
	}{
		{
			name:    "keeps largest boards in original order",
			boards:  map[string]int{"a": 1, "b": 5, "c": 3, "d": 4},
			order:   []string{"a", "b", "c", "d"},
			k:       2,
			wantIDs: []string{"b", "d"},
		},
		{
			name:    "ties resolved by input position",
			boards:  map[string]int{"a": 2, "b": 2, "c": 2},
			order:   []string{"a", "b", "c"},
			k:       2,
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "k equal to input keeps everything",
			boards:  map[string]int{"a": 1, "b": 2},
			order:   []string{"a", "b"},
			k:       2,
			wantIDs: []string{"a", "b"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			orgs := make([]common.OrganizationRecord, 0, len(tc.order))
			for _, id := range tc.order {
				orgs = append(orgs, orgWithBoard(id, tc.boards[id]))
			}

			got := topOrganizations(orgs, tc.k)

			gotIDs := make([]string, 0, len(got))
			for _, o := range got {
				gotIDs = append(gotIDs, o.ID)
			}
			if !reflect.DeepEqual(gotIDs, tc.wantIDs) {
				t.Fatalf("topOrganizations kept %v, want %v", gotIDs, tc.wantIDs)
			}
		})
	}
}
