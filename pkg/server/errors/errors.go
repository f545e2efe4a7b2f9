// Package errors defines the error kinds surfaced by server operations.
//
// Kinds are gRPC status codes: PermissionDenied for every authorization
// denial, NotFound for absent resources, InvalidArgument for caller input
// errors, Internal for violated invariants. Authorization denials carry
// deliberately generic messages that never confirm or deny that a resource
// exists.
package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kernelworx/psm/pkg/storage"
)

const InternalServerErrorMsg = "Internal Server Error"

var (
	// ErrProfileAccessDenied is returned for any failed profile read or
	// write authorization. The same error is used whether the profile is
	// absent or merely not shared with the caller, so an error shape never
	// confirms a profile id exists.
	ErrProfileAccessDenied = status.Error(codes.PermissionDenied, "Not authorized to access this profile")

	// ErrInviteNotRedeemable covers both used and expired invites; the two
	// cases are indistinguishable to the caller.
	ErrInviteNotRedeemable = status.Error(codes.InvalidArgument, "Invite is expired or has already been used")

	ErrInviteNotFound   = status.Error(codes.NotFound, "Invite not found")
	ErrShareExists      = status.Error(codes.AlreadyExists, "Profile is already shared with this account")
	ErrEmptyLineItems   = status.Error(codes.InvalidArgument, "Order must contain at least one line item")
	ErrAdminRequired    = status.Error(codes.PermissionDenied, "Admin privileges required")
	ErrCatalogInUse     = status.Error(codes.FailedPrecondition, "Catalog is referenced by existing campaigns")
	ErrInvalidJSON      = status.Error(codes.InvalidArgument, "Preferences must be a valid JSON document")
	ErrRequestCancelled = status.Error(codes.Canceled, "Request Cancelled")
)

// InternalError hides an internal cause behind a public message.
type InternalError struct {
	public   error
	internal error
}

func (e InternalError) Error() string {
	return e.public.Error()
}

func (e InternalError) Internal() error {
	return e.internal
}

func (e InternalError) Unwrap() error {
	return e.public
}

// GRPCStatus exposes the public status so callers mapping codes see Internal.
func (e InternalError) GRPCStatus() *status.Status {
	return status.Convert(e.public)
}

func NewInternalError(public string, internal error) InternalError {
	if public == "" {
		public = InternalServerErrorMsg
	}

	return InternalError{
		public:   status.Error(codes.Internal, public),
		internal: internal,
	}
}

func OnlyProfileOwnerCan(action string) error {
	return status.Error(codes.PermissionDenied, fmt.Sprintf("Only profile owner can %s", action))
}

func ProfileNotFound(profileID string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("Profile %s not found", profileID))
}

func CampaignNotFound(campaignID string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("Campaign %s not found", campaignID))
}

func OrderNotFound(orderID string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("Order %s not found", orderID))
}

func CatalogNotFound(catalogID string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("Catalog %s not found", catalogID))
}

func SharedCampaignNotFound(code string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("Shared campaign %s not found", code))
}

func AccountNotFoundByEmail(email string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("No account found for email %s", email))
}

func ShareNotFound(targetAccountID string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("No share found for account %s", targetAccountID))
}

func InvalidQuantity(productID string, quantity int) error {
	return status.Error(codes.InvalidArgument,
		fmt.Sprintf("Invalid quantity %d for product %s; quantity must be at least 1", quantity, productID))
}

func ProductNotInCatalog(productID string) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("Product %s not found in catalog", productID))
}

func PaymentMethodNotFound(method string) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("Payment method %s not found for this account", method))
}

func OnlyCatalogOwnerCan(action string) error {
	return status.Error(codes.PermissionDenied, fmt.Sprintf("Only catalog owner can %s", action))
}

func MissingRequiredField(field string) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("%s is required", field))
}

func OnlySharedCampaignCreatorCan(action string) error {
	return status.Error(codes.PermissionDenied, fmt.Sprintf("Only the shared campaign creator can %s", action))
}

func EmptyPermissions() error {
	return status.Error(codes.InvalidArgument, "Permissions must include at least one of READ, WRITE")
}

func SharedCampaignLimitExceeded(limit int) error {
	return status.Error(codes.ResourceExhausted,
		fmt.Sprintf("The number of shared campaigns exceeds the allowed limit of %d", limit))
}

// MissingStashValue reports a violated pipeline invariant: a step expected a
// stash value populated by an earlier step but found none.
func MissingStashValue(stashKey string) error {
	return NewInternalError("", fmt.Errorf("expected stash value %q was not populated by an earlier step", stashKey))
}

// HandleError is used to hide internal errors from users. Use `public` to
// return an error message to the user.
func HandleError(public string, err error) error {
	if errors.Is(err, storage.ErrCancelled) {
		return ErrRequestCancelled
	}
	return NewInternalError(public, err)
}
