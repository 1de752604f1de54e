package contacts

import (
	"context"

	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) CreateContact(context.Context, CreateContactRequest) (CreateContactResult, error) {
	return CreateContactResult{}, apperrors.E(apperrors.KindUnavailable, "contacts service is not configured")
}

func (unavailableGateway) UpdateRelationship(context.Context, UpdateRelationshipRequest) error {
	return apperrors.E(apperrors.KindUnavailable, "contacts service is not configured")
}

func (unavailableGateway) ReplaceEmployments(context.Context, ReplaceEmploymentsRequest) error {
	return apperrors.E(apperrors.KindUnavailable, "contacts service is not configured")
}

func (unavailableGateway) AddAddress(context.Context, AddAddressRequest) error {
	return apperrors.E(apperrors.KindUnavailable, "contacts service is not configured")
}

func (unavailableGateway) DeleteAddress(context.Context, DeleteAddressRequest) error {
	return apperrors.E(apperrors.KindUnavailable, "contacts service is not configured")
}
