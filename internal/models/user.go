package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document in the "users" collection.
// Balance maps an asset symbol to the held quantity; a symbol may be
// present with a zero quantity. The balance is never written directly by
// deposits or withdrawals, only by the external settlement process.
type User struct {
	ID                   primitive.ObjectID         `bson:"_id,omitempty" json:"id,omitempty"`
	Email                string                     `bson:"email" json:"email"`
	PasswordHash         string                     `bson:"passwordHash" json:"-"`
	FullName             string                     `bson:"fullName" json:"full_name"`
	ProfilePic           string                     `bson:"profilePic" json:"profile_pic"`
	WalletID             string                     `bson:"walletId" json:"wallet_id"`
	FavoriteCryptos      []string                   `bson:"favoriteCryptos" json:"favorite_cryptos"`
	Balance              map[string]decimal.Decimal `bson:"balance" json:"balance"`
	NotificationsEnabled bool                       `bson:"notificationsEnabled" json:"notifications_enabled"`
	CreatedAt            time.Time                  `bson:"createdAt" json:"created_at"`
}

// IsFavorite reports whether the given symbol is in the user's favorites.
func (u *User) IsFavorite(symbol string) bool {
	for _, s := range u.FavoriteCryptos {
		if s == symbol {
			return true
		}
	}
	return false
}

// Identity is the authenticated caller resolved from a verified token.
// It is passed explicitly into every operation that needs it; nothing in
// the service layer reads session state from a global.
type Identity struct {
	UserID string
	Email  string
}
