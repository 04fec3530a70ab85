package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cuesplit/internal/models"
	"cuesplit/internal/storage"
)

// MemberService handles member registration and profile management.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// CreateMemberRequest carries the fields for registering a member.
type CreateMemberRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
	PaymentQR string `json:"payment_qr"`
}

// UpdateMemberRequest carries a partial profile edit. Nil fields keep
// their stored value.
type UpdateMemberRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
	PaymentQR *string `json:"payment_qr"`
}

// List returns all members ordered by name.
func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	return s.store.ListMembers(ctx)
}

// Create registers a new member. Name and phone are required and the
// phone number must not already be registered. When no avatar is
// supplied a generated placeholder is assigned.
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*models.Member, error) {
	if req.Name == "" {
		return nil, Validationf("name is required")
	}
	if req.Phone == "" {
		return nil, Validationf("phone is required")
	}

	if err := s.checkPhoneFree(ctx, req.Phone, ""); err != nil {
		return nil, err
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = placeholderAvatar()
	}

	member := &models.Member{
		Name:      req.Name,
		Phone:     req.Phone,
		Avatar:    avatar,
		PaymentQR: req.PaymentQR,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		slog.Error("CreateMember failed", "error", err)
		return nil, err
	}

	slog.Info("Member created", "member_id", member.ID, "name", member.Name)
	return member, nil
}

// Update applies a partial profile edit: present fields overwrite,
// absent fields preserve the prior value. A changed phone number is
// re-validated for uniqueness excluding the member itself.
func (s *MemberService) Update(ctx context.Context, id string, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.store.GetMember(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFoundf("member not found")
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, Validationf("name cannot be empty")
		}
		member.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			return nil, Validationf("phone cannot be empty")
		}
		if *req.Phone != member.Phone {
			if err := s.checkPhoneFree(ctx, *req.Phone, id); err != nil {
				return nil, err
			}
		}
		member.Phone = *req.Phone
	}
	if req.Avatar != nil {
		member.Avatar = *req.Avatar
	}
	if req.PaymentQR != nil {
		member.PaymentQR = *req.PaymentQR
	}

	if err := s.store.UpdateMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFoundf("member not found")
		}
		slog.Error("UpdateMember failed", "member_id", id, "error", err)
		return nil, err
	}

	slog.Info("Member updated", "member_id", id)
	return member, nil
}

// Delete hard-deletes a member row.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFoundf("member not found")
		}
		slog.Error("DeleteMember failed", "member_id", id, "error", err)
		return err
	}
	slog.Info("Member deleted", "member_id", id)
	return nil
}

// checkPhoneFree returns a ValidationError when phone belongs to a
// member other than excludeID.
func (s *MemberService) checkPhoneFree(ctx context.Context, phone, excludeID string) error {
	existing, err := s.store.GetMemberByPhone(ctx, phone)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return Validationf("phone number already registered")
	}
	return nil
}

func placeholderAvatar() string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%d", time.Now().UnixMilli())
}
