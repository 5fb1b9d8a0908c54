package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Address is a raw-form ledger address, workchain id and hex account id
// joined by a colon.
type Address string

const EmptyAddress = Address("")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is the decimal sequence number assigned by a root contract.
type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) Uint64() (uint64, error) {
	id, err := strconv.ParseUint(string(i), 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid id %s: %w", i, ErrInvalidNumberFormat)
	}
	return id, nil
}

func TokenIdFromUint64(id uint64) TokenId {
	return TokenId(strconv.FormatUint(id, 10))
}

// Grams is a nanocoin amount kept as the decimal string the ledger returns.
type Grams string

var gramsPerCoin = decimal.New(1, 9)

func (g Grams) String() string {
	return string(g)
}

func (g Grams) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(g))
	if err != nil {
		return decimal.Zero, xerrors.Errorf("invalid grams %s: %w", g, ErrInvalidNumberFormat)
	}
	return d, nil
}

// Display renders the amount in whole coins. Unparsable amounts render empty.
func (g Grams) Display() string {
	d, err := g.Decimal()
	if err != nil {
		return ""
	}
	return d.DivRound(gramsPerCoin, 9).String()
}

// AddResult reports the outcome of an idempotent add.
type AddResult string

const (
	AddResultSuccess       AddResult = "success"
	AddResultAlreadyExists AddResult = "already_exists"
)

type Table string

const (
	TableActions     Table = "actions"
	TableTokens      Table = "tokens"
	TableCollections Table = "collections"
	TableAuctions    Table = "auctions"
	TableBids        Table = "bids"
	TableOffers      Table = "offers"
	TableWatermarks  Table = "watermarks"
	TableCursors     Table = "cursors"
)
