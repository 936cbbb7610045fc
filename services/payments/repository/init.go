package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/paylane/paylane/internal/pkg/models"
)

// PaymentRepo implements the payments.PaymentRepo interface
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepo creates a new payment repository instance
func NewPaymentRepo(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

// MethodRepo implements the payments.MethodRepo interface
type MethodRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewMethodRepo creates a new payment method repository instance
func NewMethodRepo(cfg *models.Config, db *sqlx.DB) *MethodRepo {
	return &MethodRepo{
		cfg: cfg,
		db:  db,
	}
}
