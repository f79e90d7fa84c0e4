package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types and statuses use the wire values of the production
// data set, which are French.
const (
	TypeDeposit    = "dépot"
	TypeWithdrawal = "retrait"

	StatusPending   = "en cours"
	StatusValidated = "validé"
	StatusFailed    = "échoué"
)

// Transaction is a pending deposit or withdrawal intent scoped by wallet
// id. The application only ever creates these documents; settlement is an
// external process that transitions the status to a final state.
type Transaction struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WalletID string             `bson:"walletId" json:"wallet_id"`
	Amount   decimal.Decimal    `bson:"amount" json:"amount"`
	Date     string             `bson:"date" json:"date"` // RFC3339
	Type     string             `bson:"type" json:"type"`
	Status   string             `bson:"status" json:"status"`
}

// NewPendingTransaction builds a transaction intent in the "en cours"
// state, stamped with the current time.
func NewPendingTransaction(walletID, txType string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		WalletID: walletID,
		Amount:   amount,
		Date:     time.Now().UTC().Format(time.RFC3339),
		Type:     txType,
		Status:   StatusPending,
	}
}

// HistoryEntry is a denormalized settled-transaction record from the
// "historiques" collection, scoped by the user's email. The bson field
// names (including the "cyptoname" misspelling) match the production
// collection and must not be normalized.
type HistoryEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email           string             `bson:"email" json:"email"`
	CryptoName      string             `bson:"cyptoname" json:"crypto_name"`
	Amount          decimal.Decimal    `bson:"amount" json:"amount"`
	TransactionType string             `bson:"typetransaction" json:"transaction_type"`
	State           string             `bson:"etattransaction" json:"state"`
	MadeAt          time.Time          `bson:"made_at" json:"made_at"`
}
