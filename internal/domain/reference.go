package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ReferenceType identifies the kind of external entity a task is attached to.
type ReferenceType string

const (
	ReferenceOrder  ReferenceType = "ORDER"
	ReferenceEntity ReferenceType = "ENTITY"
)

// Kind is the category of work a task represents.
type Kind string

const (
	KindCreateInvoice               Kind = "CREATE_INVOICE"
	KindArrangePickup               Kind = "ARRANGE_PICKUP"
	KindCollectPayment              Kind = "COLLECT_PAYMENT"
	KindAssignCustomerToSalesPerson Kind = "ASSIGN_CUSTOMER_TO_SALES_PERSON"
)

// kindsByReference lists, in reconciliation order, the kinds applicable to each reference type.
// New kinds or reference types are added here only.
var kindsByReference = []struct {
	ref   ReferenceType
	kinds []Kind
}{
	{ReferenceOrder, []Kind{KindCreateInvoice, KindArrangePickup, KindCollectPayment}},
	{ReferenceEntity, []Kind{KindAssignCustomerToSalesPerson}},
}

// AllReferenceTypes returns all reference types in table order.
func AllReferenceTypes() []ReferenceType {
	refs := make([]ReferenceType, 0, len(kindsByReference))
	for _, row := range kindsByReference {
		refs = append(refs, row.ref)
	}
	return refs
}

// KindsFor returns the ordered kinds applicable to the reference type.
// Returns nil for an unknown reference type.
func KindsFor(ref ReferenceType) []Kind {
	for _, row := range kindsByReference {
		if row.ref == ref {
			return slices.Clone(row.kinds)
		}
	}
	return nil
}

// IsValid returns true if the reference type appears in the applicability table.
func (r ReferenceType) IsValid() bool {
	return KindsFor(r) != nil
}

// AppliesTo returns true if the kind is applicable to the reference type.
func (k Kind) AppliesTo(ref ReferenceType) bool {
	return slices.Contains(KindsFor(ref), k)
}

// IsValid returns true if the kind applies to at least one reference type.
func (k Kind) IsValid() bool {
	for _, row := range kindsByReference {
		if slices.Contains(row.kinds, k) {
			return true
		}
	}
	return false
}

// ParseReferenceType parses a reference type name case-insensitively.
func ParseReferenceType(s string) (ReferenceType, error) {
	ref := ReferenceType(strings.ToUpper(strings.TrimSpace(s)))
	if !ref.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidReferenceType)
	}
	return ref, nil
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidKind)
	}
	return k, nil
}
