package commands

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/kernelworx/psm/internal/transform"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// GetMyAccountCommand returns the caller's account, creating it on first
// authenticated access so clients never need a separate signup call.
type GetMyAccountCommand struct {
	accountsBackend storage.AccountsBackend
	logger          logger.Logger
}

func NewGetMyAccountCommand(accountsBackend storage.AccountsBackend, logger logger.Logger) *GetMyAccountCommand {
	return &GetMyAccountCommand{
		accountsBackend: accountsBackend,
		logger:          logger,
	}
}

type GetMyAccountRequest struct {
	// Email seeds the account record on first access; it comes from the
	// verified token, not client input.
	Email string
}

func (c *GetMyAccountCommand) Execute(ctx context.Context, req *GetMyAccountRequest) (*types.Account, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetMyAccount", c.logger,
		pipeline.StepFunc{StepName: "FetchOrCreateAccount", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			accountID := key.WithPrefix(key.Account, exec.CallerAccountID)
			account, err := c.accountsBackend.GetAccount(ctx, accountID, storage.ReadOptions{})
			if err == nil {
				exec.Set(stashAccount, account)
				return account, nil
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.HandleError("", err)
			}

			ts := now()
			account = &types.Account{
				AccountID: accountID,
				Email:     req.Email,
				IsAdmin:   exec.IsAdmin,
				CreatedAt: ts,
				UpdatedAt: ts,
			}
			if err := c.accountsBackend.PutAccount(ctx, account); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashAccount, account)
			return account, nil
		}},
		pipeline.StepFunc{StepName: "ProjectAccount", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashAccount)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashAccount)
			}
			return transform.Account(v.(*types.Account)), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Account), nil
}

// UpdateMyAccountCommand updates the caller's own name fields. Absent fields
// stay untouched.
type UpdateMyAccountCommand struct {
	accountsBackend storage.AccountsBackend
	logger          logger.Logger
}

func NewUpdateMyAccountCommand(accountsBackend storage.AccountsBackend, logger logger.Logger) *UpdateMyAccountCommand {
	return &UpdateMyAccountCommand{
		accountsBackend: accountsBackend,
		logger:          logger,
	}
}

type UpdateMyAccountRequest struct {
	FirstName *string
	LastName  *string
}

func (c *UpdateMyAccountCommand) Execute(ctx context.Context, req *UpdateMyAccountRequest) (*types.Account, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateMyAccount", c.logger,
		pipeline.StepFunc{StepName: "FetchAccount", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			accountID := key.WithPrefix(key.Account, exec.CallerAccountID)
			account, err := c.accountsBackend.GetAccount(ctx, accountID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashAccount, account)
			return account, nil
		}},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashAccount)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashAccount)
			}
			account := v.(*types.Account)
			if req.FirstName != nil {
				account.FirstName = *req.FirstName
			}
			if req.LastName != nil {
				account.LastName = *req.LastName
			}
			account.UpdatedAt = now()
			if err := c.accountsBackend.PutAccount(ctx, account); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Account(account), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Account), nil
}

// UpdateMyPreferencesCommand replaces the caller's free-form preferences
// document. The document must be valid JSON; its shape is otherwise
// client-owned.
type UpdateMyPreferencesCommand struct {
	accountsBackend storage.AccountsBackend
	logger          logger.Logger
}

func NewUpdateMyPreferencesCommand(accountsBackend storage.AccountsBackend, logger logger.Logger) *UpdateMyPreferencesCommand {
	return &UpdateMyPreferencesCommand{
		accountsBackend: accountsBackend,
		logger:          logger,
	}
}

type UpdateMyPreferencesRequest struct {
	Preferences string
}

func (c *UpdateMyPreferencesCommand) Execute(ctx context.Context, req *UpdateMyPreferencesRequest) (*types.Account, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateMyPreferences", c.logger,
		pipeline.StepFunc{StepName: "ValidateDocument", Fn: func(_ context.Context, _ *pipeline.Exec) (any, error) {
			if !gjson.Valid(req.Preferences) {
				return nil, serverErrors.ErrInvalidJSON
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "FetchAccount", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			accountID := key.WithPrefix(key.Account, exec.CallerAccountID)
			account, err := c.accountsBackend.GetAccount(ctx, accountID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashAccount, account)
			return account, nil
		}},
		pipeline.StepFunc{StepName: "PutPreferences", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashAccount)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashAccount)
			}
			account := v.(*types.Account)
			account.Preferences = req.Preferences
			account.UpdatedAt = now()
			if err := c.accountsBackend.PutAccount(ctx, account); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Account(account), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Account), nil
}
