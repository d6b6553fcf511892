// Package forms validates submission payloads before anything is persisted.
// A failed form carries field-level messages for the template to render.
package forms

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostForm is the create/edit post payload. Group is the raw group id from
// the select input; empty means no group. The image file travels outside the
// form and is attached by the handler after upload.
type PostForm struct {
	Text   string            `form:"text" validate:"required"`
	Group  string            `form:"group" validate:"-"`
	Errors map[string]string `form:"-" validate:"-"`

	groupID *uint
}

// CommentForm is the add-comment payload.
type CommentForm struct {
	Text   string            `form:"text" validate:"required,max=500"`
	Errors map[string]string `form:"-" validate:"-"`
}

// Validate runs the tag rules, parses the optional group reference and
// records field messages. It returns true when the form may be persisted.
func (f *PostForm) Validate() bool {
	f.Errors = collect(validate.Struct(f), map[string]string{
		"Text": "Enter the post text.",
	})
	f.groupID = nil
	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 32)
		if err != nil {
			f.Errors["Group"] = "Select a valid group."
		} else {
			v := uint(id)
			f.groupID = &v
		}
	}
	return len(f.Errors) == 0
}

func (f *CommentForm) Validate() bool {
	f.Errors = collect(validate.Struct(f), map[string]string{
		"Text": "Enter a comment of at most 500 characters.",
	})
	return len(f.Errors) == 0
}

// GroupID returns the group reference parsed by Validate; nil means no group.
func (f *PostForm) GroupID() *uint { return f.groupID }

// SetError attaches a message produced outside the tag rules, e.g. a group
// lookup failure or a store-level rejection.
func (f *PostForm) SetError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	f.Errors[field] = msg
}

func collect(err error, messages map[string]string) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["form"] = "Invalid submission."
		return out
	}
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value."
		}
		out[fe.Field()] = msg
	}
	return out
}
