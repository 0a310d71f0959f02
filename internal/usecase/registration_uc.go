package usecase

import (
	"context"

	"telegram-referral-gate/internal/domain/model"
	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ RegistrationUseCase = (*registrationUC)(nil)

// RegistrationUseCase handles first-time registration and referral
// attribution.
type RegistrationUseCase interface {
	// Register inserts the user if absent and, on first insert only,
	// credits the referrer with one point. Reports whether the row was
	// created; repeat calls are no-ops and never re-attribute.
	Register(ctx context.Context, userID int64, username string, referredBy *int64) (bool, error)
}

type registrationUC struct {
	users repository.UserRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewRegistrationUseCase(users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *registrationUC {
	return &registrationUC{users: users, tm: tm, log: logger}
}

func (u *registrationUC) Register(ctx context.Context, userID int64, username string, referredBy *int64) (bool, error) {
	nu, err := model.NewUser(userID, username, referredBy)
	if err != nil {
		return false, err
	}

	// Insert-if-absent and the conditional referrer credit are one
	// transaction, so two simultaneous first registrations cannot
	// double-count a referral.
	var created bool
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ins, err := u.users.Insert(ctx, tx, nu)
		if err != nil {
			return err
		}
		created = ins
		if !ins || referredBy == nil {
			return nil
		}
		// A referrer with no registry row matches zero rows here and the
		// credit is dropped.
		return u.users.IncrementPoints(ctx, tx, *referredBy)
	})
	if err != nil {
		u.log.Error().Err(err).Int64("user_id", userID).Msg("registration failed")
		return false, err
	}
	if created {
		metrics.IncRegistration()
		ev := u.log.Info().Int64("user_id", userID)
		if referredBy != nil {
			metrics.IncReferralCredit()
			ev = ev.Int64("referred_by", *referredBy)
		}
		ev.Msg("user registered")
	}
	return created, nil
}
