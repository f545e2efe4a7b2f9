package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kernelworx/psm/pkg/key"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
)

// builtinPaymentMethods are accepted for every account without a lookup.
// They are never stored in preferences, so the registered-method check must
// not be the only gate. Matching is case-insensitive; old clients sent these
// upper-cased.
var builtinPaymentMethods = []string{"Cash", "Check"}

// validatePaymentMethod checks the method against the profile owner's
// registered payment methods. Accounts register methods as entries of the
// paymentMethods list inside their preferences document; the order path only
// needs the names, so the document is probed rather than parsed into a
// struct.
func validatePaymentMethod(ctx context.Context, store storage.AccountsBackend, ownerAccountID, method string) error {
	if method == "" {
		return serverErrors.MissingRequiredField("paymentMethod")
	}
	for _, builtin := range builtinPaymentMethods {
		if strings.EqualFold(method, builtin) {
			return nil
		}
	}

	account, err := store.GetAccount(ctx,
		key.WithPrefix(key.Account, ownerAccountID),
		storage.ReadOptions{Consistency: storage.HigherConsistency})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return serverErrors.PaymentMethodNotFound(method)
		}
		return serverErrors.HandleError("", err)
	}

	for _, name := range gjson.Get(account.Preferences, "paymentMethods.#.name").Array() {
		if name.String() == method {
			return nil
		}
	}
	return serverErrors.PaymentMethodNotFound(method)
}
