package dto

import (
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type UpdateFullNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
}
