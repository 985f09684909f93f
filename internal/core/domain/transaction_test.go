package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradelens/barter_ledger/internal/core/domain"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.TransactionStatus
		to   domain.TransactionStatus
		want bool
	}{
		{name: "draft can be posted", from: domain.Draft, to: domain.Posted, want: true},
		{name: "draft can be voided", from: domain.Draft, to: domain.Void, want: true},
		{name: "posted can be voided", from: domain.Posted, to: domain.Void, want: true},
		{name: "posted cannot return to draft", from: domain.Posted, to: domain.Draft, want: false},
		{name: "posted cannot be posted again", from: domain.Posted, to: domain.Posted, want: false},
		{name: "void is terminal", from: domain.Void, to: domain.Posted, want: false},
		{name: "void cannot be voided again", from: domain.Void, to: domain.Void, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransactionStatus_IsMutable(t *testing.T) {
	assert.True(t, domain.Draft.IsMutable())
	assert.False(t, domain.Posted.IsMutable())
	assert.False(t, domain.Void.IsMutable())
}
