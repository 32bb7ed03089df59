package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

func TestDispatchRoutesByKind(t *testing.T) {
	d := NewDispatcher()

	var alerts []string
	d.Register(domain.ActionEmitAlert, func(ctx context.Context, a forms.RuleAction) error {
		alerts = append(alerts, a.AlertCode)
		return nil
	})

	err := d.Dispatch(context.Background(), []forms.RuleAction{
		{Type: domain.ActionEmitAlert, AlertCode: "DOR"},
		{Type: domain.ActionWebhook, URL: "https://example.com"},
		{Type: domain.ActionEmitAlert, AlertCode: "FEBRE"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DOR", "FEBRE"}, alerts, "unhandled kinds are skipped")
}

func TestDispatchStopsOnHandlerError(t *testing.T) {
	d := NewDispatcher()

	boom := errors.New("webhook down")
	var called int
	d.Register(domain.ActionWebhook, func(ctx context.Context, a forms.RuleAction) error {
		return boom
	})
	d.Register(domain.ActionEmitAlert, func(ctx context.Context, a forms.RuleAction) error {
		called++
		return nil
	})

	err := d.Dispatch(context.Background(), []forms.RuleAction{
		{Type: domain.ActionWebhook},
		{Type: domain.ActionEmitAlert, AlertCode: "DOR"},
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, called, "dispatch stops at the first failure")
}

func TestRegisterOverwrites(t *testing.T) {
	d := NewDispatcher()

	d.Register(domain.ActionSetTag, func(ctx context.Context, a forms.RuleAction) error {
		t.Fatal("old handler must not run")
		return nil
	})
	var tag string
	d.Register(domain.ActionSetTag, func(ctx context.Context, a forms.RuleAction) error {
		tag = a.Tag
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), []forms.RuleAction{
		{Type: domain.ActionSetTag, Tag: "acompanhamento"},
	}))
	assert.Equal(t, "acompanhamento", tag)
}
