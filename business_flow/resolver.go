package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
)

// EntityResolver implements get-or-create semantics for shared entities and
// owns the association rules between owners and the entities they hold.
// All methods expect to run inside the caller's transaction; they never open
// their own, so a failure in the surrounding flow rolls everything back.
type EntityResolver struct {
	addressRepo     repository.AddressRepository
	personRepo      repository.PersonRepository
	phoneRepo       repository.PhoneRepository
	taxIDRepo       repository.TaxIDRepository
	associationRepo repository.AssociationRepository
	clock           utils.Clock
}

// NewEntityResolver creates a new entity resolver
func NewEntityResolver(
	addressRepo repository.AddressRepository,
	personRepo repository.PersonRepository,
	phoneRepo repository.PhoneRepository,
	taxIDRepo repository.TaxIDRepository,
	associationRepo repository.AssociationRepository,
	clock utils.Clock,
) *EntityResolver {
	return &EntityResolver{
		addressRepo:     addressRepo,
		personRepo:      personRepo,
		phoneRepo:       phoneRepo,
		taxIDRepo:       taxIDRepo,
		associationRepo: associationRepo,
		clock:           clock,
	}
}

// ResolveAddress returns the active address matching the input. An explicit ID
// is looked up directly and fails when no active address carries it. Without an
// ID the match is on the full field set, since addresses have no natural key,
// and a new address is created when no match exists.
func (r *EntityResolver) ResolveAddress(ctx context.Context, input dto.AddressInput) (*models.Address, error) {
	if input.ID != nil {
		address, err := r.addressRepo.ByID(ctx, *input.ID)
		if err != nil {
			return nil, NewInternalError("failed to load address", err)
		}
		if address == nil || address.IsDeleted {
			return nil, NewNotFoundError("address not found", ErrAddressNotFound)
		}
		return address, nil
	}

	if err := requireFields("address", []requiredField{
		{"state", input.State},
		{"municipality", input.Municipality},
		{"sector", input.Sector},
	}); err != nil {
		return nil, err
	}

	country := input.Country
	if country == "" {
		country = "Venezuela"
	}

	candidates, err := r.addressRepo.ByFilter(ctx, models.AddressFilter{
		State:        &input.State,
		Municipality: &input.Municipality,
		Sector:       &input.Sector,
		IsDeleted:    utils.ToPtr(false),
	}, "id ASC", 0, 0)
	if err != nil {
		return nil, NewInternalError("failed to look up address", err)
	}

	for _, c := range candidates {
		if c.Country != country {
			continue
		}
		if !equalOptional(c.Description, input.Description) {
			continue
		}
		return c, nil
	}

	address := &models.Address{
		Country:      country,
		State:        input.State,
		Municipality: input.Municipality,
		Sector:       input.Sector,
		Description:  input.Description,
		CreatedAt:    r.clock.Now(),
	}
	if err := r.addressRepo.Save(ctx, address); err != nil {
		return nil, NewInternalError("failed to create address", err)
	}

	return address, nil
}

// ResolvePhone returns the active phone with the input's number, creating one
// when none exists. The number is the natural key; carrier and category of an
// existing row are left untouched. An explicit ID bypasses the natural key.
func (r *EntityResolver) ResolvePhone(ctx context.Context, input dto.PhoneInput) (*models.Phone, error) {
	if input.ID != nil {
		phone, err := r.phoneRepo.ByID(ctx, *input.ID)
		if err != nil {
			return nil, NewInternalError("failed to load phone", err)
		}
		if phone == nil || phone.IsDeleted {
			return nil, NewNotFoundError("phone not found", ErrPhoneNotFound)
		}
		return phone, nil
	}

	if err := requireFields("phone", []requiredField{
		{"carrier", input.Carrier},
		{"number", input.Number},
		{"category", input.Category},
	}); err != nil {
		return nil, err
	}

	existing, err := r.phoneRepo.ByNumber(ctx, input.Number)
	if err != nil {
		return nil, NewInternalError("failed to look up phone", err)
	}
	if existing != nil {
		return existing, nil
	}

	countryCode := input.CountryCode
	if countryCode == "" {
		countryCode = "+58"
	}

	phone := &models.Phone{
		CountryCode: countryCode,
		Carrier:     input.Carrier,
		Number:      input.Number,
		Category:    input.Category,
		CreatedAt:   r.clock.Now(),
	}
	if err := r.phoneRepo.Save(ctx, phone); err != nil {
		if isUniqueViolation(err) {
			return nil, NewConflictError("phone number was registered concurrently", err)
		}
		return nil, NewInternalError("failed to create phone", err)
	}

	return phone, nil
}

// ResolveTaxID returns the active tax identifier with the input's type and
// number, creating one when none exists. An explicit ID bypasses the natural
// key.
func (r *EntityResolver) ResolveTaxID(ctx context.Context, input dto.TaxIDInput) (*models.TaxID, error) {
	if input.ID != nil {
		taxID, err := r.taxIDRepo.ByID(ctx, *input.ID)
		if err != nil {
			return nil, NewInternalError("failed to load tax id", err)
		}
		if taxID == nil || taxID.IsDeleted {
			return nil, NewNotFoundError("tax id not found", ErrTaxIDNotFound)
		}
		return taxID, nil
	}

	if err := requireFields("tax id", []requiredField{
		{"type", input.Type},
		{"number", input.Number},
	}); err != nil {
		return nil, err
	}

	existing, err := r.taxIDRepo.ByTypeAndNumber(ctx, input.Type, input.Number)
	if err != nil {
		return nil, NewInternalError("failed to look up tax id", err)
	}
	if existing != nil {
		return existing, nil
	}

	taxID := &models.TaxID{
		Type:      input.Type,
		Number:    input.Number,
		CreatedAt: r.clock.Now(),
	}
	if err := r.taxIDRepo.Save(ctx, taxID); err != nil {
		if isUniqueViolation(err) {
			return nil, NewConflictError("tax id was registered concurrently", err)
		}
		return nil, NewInternalError("failed to create tax id", err)
	}

	return taxID, nil
}

// ResolvePerson returns the active person holding the input's national id.
// An existing person is updated in place: name, document type and address all
// take the incoming values, and incoming phones are linked on top of whatever
// the person already holds. A missing person is created from scratch. An
// explicit ID loads the person as-is without touching any field.
func (r *EntityResolver) ResolvePerson(ctx context.Context, input dto.PersonInput) (*models.Person, error) {
	if input.ID != nil {
		person, err := r.personRepo.ByID(ctx, *input.ID)
		if err != nil {
			return nil, NewInternalError("failed to load person", err)
		}
		if person == nil || person.IsDeleted {
			return nil, NewNotFoundError("person not found", ErrPersonNotFound)
		}
		return person, nil
	}

	if err := requireFields("person", []requiredField{
		{"first_name", input.FirstName},
		{"last_name", input.LastName},
		{"national_id_type", input.NationalIDType},
		{"national_id", input.NationalID},
	}); err != nil {
		return nil, err
	}

	address, err := r.ResolveAddress(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	person, err := r.personRepo.ByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, NewInternalError("failed to look up person", err)
	}

	if person != nil {
		person.FirstName = input.FirstName
		person.LastName = input.LastName
		person.NationalIDType = input.NationalIDType
		person.AddressID = address.ID
		if err := r.personRepo.Update(ctx, person); err != nil {
			return nil, NewInternalError("failed to update person", err)
		}
	} else {
		person = &models.Person{
			AddressID:      address.ID,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			NationalIDType: input.NationalIDType,
			NationalID:     input.NationalID,
			CreatedAt:      r.clock.Now(),
		}
		if err := r.personRepo.Save(ctx, person); err != nil {
			if isUniqueViolation(err) {
				return nil, NewConflictError("national id was registered concurrently", err)
			}
			return nil, NewInternalError("failed to create person", err)
		}
	}

	for _, phoneInput := range input.Phones {
		phone, err := r.ResolvePhone(ctx, phoneInput)
		if err != nil {
			return nil, err
		}
		if err := r.Associate(ctx, models.OwnerTypePerson, person.ID, models.SharedTypePhone, phone.ID); err != nil {
			return nil, err
		}
	}

	person.Address = address
	return person, nil
}

// Associate links an owner to a shared entity. An active link is a no-op, a
// soft-deleted link is reactivated, and a fresh link is inserted. For
// exclusive shared kinds (phones, tax ids) the link is refused with a conflict
// when any other owner holds the entity actively.
func (r *EntityResolver) Associate(ctx context.Context, ownerType string, ownerID uint, sharedType string, sharedID uint) error {
	existing, err := r.associationRepo.FindIncludingDeleted(ctx, ownerType, ownerID, sharedType, sharedID)
	if err != nil {
		return NewInternalError("failed to look up association", err)
	}

	if existing != nil && !existing.IsDeleted {
		return nil
	}

	if models.IsExclusiveSharedType(sharedType) {
		holder, err := r.associationRepo.ActiveBySharedEntity(ctx, sharedType, sharedID)
		if err != nil {
			return NewInternalError("failed to check shared entity holder", err)
		}
		if holder != nil && (holder.OwnerType != ownerType || holder.OwnerID != ownerID) {
			return NewConflictError("shared entity is held by another owner", ErrSharedEntityHeldByOther)
		}
	}

	if existing != nil {
		existing.IsDeleted = false
		existing.UpdatedAt = r.clock.Now()
		if err := r.associationRepo.Update(ctx, existing); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("shared entity was claimed concurrently", ErrSharedEntityHeldByOther)
			}
			return NewInternalError("failed to reactivate association", err)
		}
		return nil
	}

	now := r.clock.Now()
	assoc := &models.Association{
		OwnerType:  ownerType,
		OwnerID:    ownerID,
		SharedType: sharedType,
		SharedID:   sharedID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.associationRepo.Save(ctx, assoc); err != nil {
		if isUniqueViolation(err) {
			return NewConflictError("shared entity was claimed concurrently", ErrSharedEntityHeldByOther)
		}
		return NewInternalError("failed to create association", err)
	}

	return nil
}

// Dissociate soft-deletes the link between an owner and a shared entity. The
// shared entity itself stays; a later Associate call reactivates the link.
func (r *EntityResolver) Dissociate(ctx context.Context, ownerType string, ownerID uint, sharedType string, sharedID uint) error {
	existing, err := r.associationRepo.FindIncludingDeleted(ctx, ownerType, ownerID, sharedType, sharedID)
	if err != nil {
		return NewInternalError("failed to look up association", err)
	}
	if existing == nil || existing.IsDeleted {
		return nil
	}

	existing.IsDeleted = true
	existing.UpdatedAt = r.clock.Now()
	if err := r.associationRepo.Update(ctx, existing); err != nil {
		return NewInternalError("failed to remove association", err)
	}

	return nil
}

// ActivePhones returns the phones actively linked to an owner
func (r *EntityResolver) ActivePhones(ctx context.Context, ownerType string, ownerID uint) ([]*models.Phone, error) {
	links, err := r.associationRepo.ActiveByOwner(ctx, ownerType, ownerID, models.SharedTypePhone)
	if err != nil {
		return nil, NewInternalError("failed to list phone associations", err)
	}

	phones := make([]*models.Phone, 0, len(links))
	for _, link := range links {
		phone, err := r.phoneRepo.ByID(ctx, link.SharedID)
		if err != nil {
			return nil, NewInternalError("failed to load phone", err)
		}
		if phone != nil {
			phones = append(phones, phone)
		}
	}

	return phones, nil
}

// ActiveTaxID returns the tax identifier actively linked to an owner, or nil
func (r *EntityResolver) ActiveTaxID(ctx context.Context, ownerType string, ownerID uint) (*models.TaxID, error) {
	links, err := r.associationRepo.ActiveByOwner(ctx, ownerType, ownerID, models.SharedTypeTaxID)
	if err != nil {
		return nil, NewInternalError("failed to list tax id associations", err)
	}
	if len(links) == 0 {
		return nil, nil
	}

	taxID, err := r.taxIDRepo.ByID(ctx, links[0].SharedID)
	if err != nil {
		return nil, NewInternalError("failed to load tax id", err)
	}

	return taxID, nil
}

type requiredField struct {
	name  string
	value string
}

// requireFields fails with a validation error naming every empty field
func requireFields(entity string, fields []requiredField) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return NewValidationError(fmt.Sprintf("%s is missing required fields: %s", entity, strings.Join(missing, ", ")), nil)
}

func equalOptional(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
