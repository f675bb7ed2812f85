package splitter

import (
	"testing"

	"github.com/divide-it/backend/internal/money"
)

func TestBuildSplits(t *testing.T) {
	tests := []struct {
		name         string
		amount       money.Amount
		payerID      string
		participants []string
		wantOwed     []money.Amount
		wantSettled  []bool
		wantErr      bool
	}{
		{
			name:         "even three-way split",
			amount:       9000,
			payerID:      "alice",
			participants: []string{"alice", "bob", "carol"},
			wantOwed:     []money.Amount{3000, 3000, 3000},
			wantSettled:  []bool{true, false, false},
		},
		{
			name:         "hundred over three reconciles to the cent",
			amount:       10000,
			payerID:      "alice",
			participants: []string{"alice", "bob", "carol"},
			wantOwed:     []money.Amount{3334, 3333, 3333},
			wantSettled:  []bool{true, false, false},
		},
		{
			name:         "payer not participating keeps every split open",
			amount:       5000,
			payerID:      "dave",
			participants: []string{"alice", "bob"},
			wantOwed:     []money.Amount{2500, 2500},
			wantSettled:  []bool{false, false},
		},
		{
			name:         "single self-split is born settled",
			amount:       1299,
			payerID:      "alice",
			participants: []string{"alice"},
			wantOwed:     []money.Amount{1299},
			wantSettled:  []bool{true},
		},
		{
			name:    "no participants",
			amount:  1000,
			payerID: "alice",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := BuildSplits("exp-1", tt.amount, tt.payerID, tt.participants)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildSplits error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}
			var sum money.Amount
			for i, s := range splits {
				if s.UserID != tt.participants[i] {
					t.Errorf("split %d user = %s, want %s", i, s.UserID, tt.participants[i])
				}
				if s.AmountOwed != tt.wantOwed[i] {
					t.Errorf("split %d owed = %d, want %d", i, s.AmountOwed, tt.wantOwed[i])
				}
				if s.IsSettled != tt.wantSettled[i] {
					t.Errorf("split %d settled = %v, want %v", i, s.IsSettled, tt.wantSettled[i])
				}
				if s.SettledAt != nil {
					t.Errorf("split %d has a settlement timestamp at creation", i)
				}
				if s.ExpenseID != "exp-1" {
					t.Errorf("split %d expense = %s", i, s.ExpenseID)
				}
				if s.ID == "" {
					t.Errorf("split %d has no ID", i)
				}
				sum += s.AmountOwed
			}
			if sum != tt.amount {
				t.Errorf("splits sum to %d, want %d", sum, tt.amount)
			}
		})
	}
}

func TestResolveParticipants(t *testing.T) {
	tests := []struct {
		name     string
		explicit []string
		members  []string
		payer    string
		want     []string
	}{
		{
			name:     "explicit ids win over members",
			explicit: []string{"bob", "carol"},
			members:  []string{"alice", "bob", "carol", "dave"},
			payer:    "alice",
			want:     []string{"bob", "carol"},
		},
		{
			name:    "group members when no explicit ids",
			members: []string{"alice", "bob"},
			payer:   "alice",
			want:    []string{"alice", "bob"},
		},
		{
			name:  "payer alone as last resort",
			payer: "alice",
			want:  []string{"alice"},
		},
		{
			name:     "duplicates collapse, first occurrence kept",
			explicit: []string{"bob", "alice", "bob"},
			payer:    "alice",
			want:     []string{"bob", "alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveParticipants(tt.explicit, tt.members, tt.payer)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
