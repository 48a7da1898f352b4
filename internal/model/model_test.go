package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStateOf(t *testing.T) {
	tests := []struct {
		slug string
		want PaymentState
	}{
		{StatusSlugPaid, PaymentPaid},
		{StatusSlugPaidClosed, PaymentPaid},
		{StatusSlugPending, PaymentPending},
		{StatusSlugCancelled, PaymentCancelled},
		{StatusSlugNoPaidClosed, PaymentCancelled},
		{StatusSlugCompleted, PaymentOther},
		{"", PaymentOther},
		{"что-то-своё", PaymentOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PaymentStateOf(tt.slug), "slug %q", tt.slug)
	}
}

func TestLessonPaymentState(t *testing.T) {
	lesson := &Lesson{}
	assert.Equal(t, PaymentOther, lesson.PaymentState())

	lesson.Status = &Status{Slug: StatusSlugPaid}
	assert.Equal(t, PaymentPaid, lesson.PaymentState())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Математика", "математика"},
		{"English B2", "english-b2"},
		{"  Подготовка к ЕГЭ  ", "подготовка-к-егэ"},
		{"C++ (базовый)", "c-базовый"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "name %q", tt.name)
	}
}
