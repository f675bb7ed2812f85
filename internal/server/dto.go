package server

import (
	"time"

	"github.com/divide-it/backend/internal/ledger"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
	"github.com/divide-it/backend/internal/service"
)

type userJSON struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func toUserJSON(u *models.User) *userJSON {
	if u == nil {
		return nil
	}
	return &userJSON{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		AvatarURL:   u.AvatarURL,
	}
}

type splitJSON struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	AmountOwed money.Amount `json:"amount_owed"`
	IsSettled  bool         `json:"is_settled"`
	SettledAt  *time.Time   `json:"settled_at,omitempty"`
}

func toSplitJSON(s models.ExpenseSplit) splitJSON {
	return splitJSON{
		ID:         s.ID,
		UserID:     s.UserID,
		AmountOwed: s.AmountOwed,
		IsSettled:  s.IsSettled,
		SettledAt:  s.SettledAt,
	}
}

type expenseJSON struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	PayerID     string       `json:"payer"`
	GroupID     string       `json:"group"`
	Date        time.Time    `json:"date"`
	Splits      []splitJSON  `json:"splits"`
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	splits := make([]splitJSON, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = toSplitJSON(s)
	}
	return expenseJSON{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		GroupID:     e.GroupID,
		Date:        e.CreatedAt,
		Splits:      splits,
	}
}

type groupJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func toGroupJSON(g *models.Group) groupJSON {
	members := g.MemberIDs
	if members == nil {
		members = []string{}
	}
	return groupJSON{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: members,
		CreatedAt: g.CreatedAt,
	}
}

type balanceJSON struct {
	YouOwe    money.Amount `json:"you_owe"`
	OwedToYou money.Amount `json:"owed_to_you"`
}

type breakdownEntryJSON struct {
	Friend     *userJSON    `json:"friend"`
	YouOwe     money.Amount `json:"you_owe"`
	OwedToYou  money.Amount `json:"owed_to_you"`
	NetBalance money.Amount `json:"net_balance"`
}

func toBreakdownJSON(entries []service.BreakdownEntry) []breakdownEntryJSON {
	out := make([]breakdownEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = breakdownEntryJSON{
			Friend:     toUserJSON(e.Counterparty),
			YouOwe:     e.YouOwe,
			OwedToYou:  e.OwedToYou,
			NetBalance: e.NetBalance,
		}
	}
	return out
}

type eventJSON struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	Date        time.Time    `json:"date"`
	GroupName   string       `json:"group_name"`

	PayerID   string      `json:"payer,omitempty"`
	PayerName string      `json:"payer_name,omitempty"`
	Splits    []splitJSON `json:"splits,omitempty"`

	FromUser    string `json:"from_user,omitempty"`
	ToUser      string `json:"to_user,omitempty"`
	IsReceiving *bool  `json:"is_receiving,omitempty"`
}

func toEventJSON(ev models.Event) eventJSON {
	out := eventJSON{
		ID:          ev.ID,
		Type:        string(ev.Type),
		Description: ev.Description,
		Amount:      ev.Amount,
		Date:        ev.Date,
		GroupName:   ev.GroupName,
	}
	switch ev.Type {
	case models.EventExpense:
		out.PayerID = ev.PayerID
		out.PayerName = ev.PayerName
		out.Splits = make([]splitJSON, len(ev.Splits))
		for i, s := range ev.Splits {
			out.Splits[i] = toSplitJSON(s)
		}
	case models.EventPayment:
		out.FromUser = ev.FromUser
		out.ToUser = ev.ToUser
		receiving := ev.IsReceiving
		out.IsReceiving = &receiving
	}
	return out
}

// orderingFromQuery maps the ?ordering= and ?dir= params onto a sort key
// and direction, defaulting to date descending.
func orderingFromQuery(ordering, dir string) (ledger.Ordering, bool) {
	key := ledger.OrderByDate
	if ordering == string(ledger.OrderByAmount) {
		key = ledger.OrderByAmount
	}
	descending := dir != "asc"
	return key, descending
}
