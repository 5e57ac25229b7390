package model

import (
	"strings"
	"time"
)

// CreditType labels a credit record and decides its direction.
type CreditType string

// Credit types.
const (
	CreditEarnedClothing     CreditType = "EARNED_CLOTHING"
	CreditEarnedEvent        CreditType = "EARNED_EVENT"
	CreditSpentReward        CreditType = "SPENT_REWARD"
	CreditSpentOffset        CreditType = "SPENT_OFFSET"
	CreditSpentMakerPurchase CreditType = "SPENT_MAKER_PURCHASE"
)

// Earned reports whether the type adds to a balance.
func (t CreditType) Earned() bool {
	return strings.HasPrefix(string(t), "EARNED")
}

// Spent reports whether the type subtracts from a balance.
func (t CreditType) Spent() bool {
	return strings.HasPrefix(string(t), "SPENT")
}

// Credit is one entry in a user's OL credit history. Amount may arrive with
// either sign; Type alone decides the direction.
type Credit struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Date         time.Time  `json:"date"`
	ActivityName string     `json:"activityName"`
	Type         CreditType `json:"type"`
	Amount       int        `json:"amount"`
}

// Signed returns the amount's contribution to a balance.
func (c Credit) Signed() int {
	a := c.Amount
	if a < 0 {
		a = -a
	}
	switch {
	case c.Type.Earned():
		return a
	case c.Type.Spent():
		return -a
	default:
		return 0
	}
}
