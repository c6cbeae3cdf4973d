package walletutil

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a wallet ledger row for the admin
// reconciliation screens.
type TransactionKind string

const (
	KindTopUp      TransactionKind = "top_up"
	KindPayment    TransactionKind = "payment"
	KindRefund     TransactionKind = "refund"
	KindWithdrawal TransactionKind = "withdrawal"
	KindUnknown    TransactionKind = "unknown"
)

var kindByLabel = map[string]TransactionKind{
	"top_up":     KindTopUp,
	"topup":      KindTopUp,
	"deposit":    KindTopUp,
	"payment":    KindPayment,
	"order":      KindPayment,
	"purchase":   KindPayment,
	"refund":     KindRefund,
	"reversal":   KindRefund,
	"withdrawal": KindWithdrawal,
	"withdraw":   KindWithdrawal,
	"payout":     KindWithdrawal,
}

// ClassifyTransaction maps a backend transaction label to its kind.
// The mapping is total over known variants with an explicit unknown
// bucket; no substring matching, so a new backend label can only land
// in KindUnknown, never be misfiled.
func ClassifyTransaction(label string) TransactionKind {
	if kind, ok := kindByLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return kind
	}
	return KindUnknown
}

// NormalizeAmount parses a ledger amount that may carry thousand
// separators ("1.240.000", "1,240,000") or a decimal tail
// ("240000.00") into whole VND. Unparseable input degrades to 0.
func NormalizeAmount(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "₫")
	s = strings.TrimSpace(s)

	// A trailing dot/comma group of one or two digits is a decimal
	// fraction; every other separator is a thousands mark.
	if i := strings.LastIndexAny(s, ".,"); i >= 0 && len(s)-i-1 >= 1 && len(s)-i-1 <= 2 {
		s = strings.Map(dropSeparators, s[:i]) + "." + s[i+1:]
	} else {
		s = strings.Map(dropSeparators, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	return d.Round(0).IntPart()
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' || r == ' ' {
		return -1
	}
	return r
}
