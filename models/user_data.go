// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UserData is the profile of the person using the installation. Nil fields
// are "not set" and are left untouched on the backend by a PATCH.
type UserData struct {
	ExternalUserID *string `json:"externalUserId,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	MiddleName     *string `json:"middleName,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Birthday       *string `json:"birthday,omitempty"`

	Phones []string `json:"phones,omitempty"`
	Emails []string `json:"emails,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	CustomAttributes map[string]any `json:"customAttributes,omitempty"`
}

// Merge returns a copy of u overlaid with every field set in other. Custom
// attributes are merged key by key. A nil receiver behaves like an empty
// UserData.
func (u *UserData) Merge(other *UserData) *UserData {
	merged := &UserData{}
	if u != nil {
		*merged = *u
		merged.CustomAttributes = copyAttributes(u.CustomAttributes)
	}
	if other == nil {
		return merged
	}

	if other.ExternalUserID != nil {
		merged.ExternalUserID = other.ExternalUserID
	}
	if other.FirstName != nil {
		merged.FirstName = other.FirstName
	}
	if other.LastName != nil {
		merged.LastName = other.LastName
	}
	if other.MiddleName != nil {
		merged.MiddleName = other.MiddleName
	}
	if other.Gender != nil {
		merged.Gender = other.Gender
	}
	if other.Birthday != nil {
		merged.Birthday = other.Birthday
	}
	if other.Phones != nil {
		merged.Phones = other.Phones
	}
	if other.Emails != nil {
		merged.Emails = other.Emails
	}
	if other.Tags != nil {
		merged.Tags = other.Tags
	}
	for k, v := range other.CustomAttributes {
		if merged.CustomAttributes == nil {
			merged.CustomAttributes = make(map[string]any, len(other.CustomAttributes))
		}
		merged.CustomAttributes[k] = v
	}

	return merged
}

func copyAttributes(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
