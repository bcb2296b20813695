package gtm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccountID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid account ID", id: "6321366409", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "too short", id: "999999", wantErr: true},
		{name: "non-numeric", id: "abc1234567", wantErr: true},
		{name: "embedded space", id: "632136 409", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountID(tt.id)
			if tt.wantErr {
				var verr *ValidationError
				assert.Error(t, err)
				assert.True(t, errors.As(err, &verr))
				assert.Equal(t, "account_id", verr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNumericIDs(t *testing.T) {
	assert.NoError(t, ValidateContainerID("12345"))
	assert.NoError(t, ValidateWorkspaceID("5"))
	assert.Error(t, ValidateContainerID(""))
	assert.Error(t, ValidateContainerID("12a45"))
	assert.Error(t, ValidateWorkspaceID("ws-5"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("GA4 - Config", "name", 0))
	assert.NoError(t, ValidateName(strings.Repeat("a", MaxNameLength), "name", 0))
	assert.Error(t, ValidateName("", "name", 0))
	assert.Error(t, ValidateName("   ", "name", 0))
	assert.Error(t, ValidateName(strings.Repeat("a", MaxNameLength+1), "name", 0))
	assert.Error(t, ValidateName("toolong", "name", 3))
}

func TestValidateNotes(t *testing.T) {
	assert.NoError(t, ValidateNotes(""))
	assert.NoError(t, ValidateNotes("release notes"))
	assert.Error(t, ValidateNotes(strings.Repeat("n", MaxNotesLength+1)))
}

func TestValidateGTMPath(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedType string
		wantErr      bool
	}{
		{name: "account path", path: "accounts/6321366409", expectedType: "", wantErr: false},
		{name: "workspace path", path: "accounts/1234567890/containers/222/workspaces/5", expectedType: "workspace", wantErr: false},
		{name: "wrong collection", path: "accounts/1234567890/containers/222", expectedType: "workspace", wantErr: true},
		{name: "not account rooted", path: "containers/222", expectedType: "", wantErr: true},
		{name: "empty", path: "", expectedType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGTMPath(tt.path, tt.expectedType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGA4EventName(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		wantErr   bool
	}{
		{name: "purchase", eventName: "purchase", wantErr: false},
		{name: "add_to_cart", eventName: "add_to_cart", wantErr: false},
		{name: "leading digit", eventName: "123invalid", wantErr: true},
		{name: "hyphen", eventName: "invalid-event", wantErr: true},
		{name: "empty", eventName: "", wantErr: true},
		{name: "too long", eventName: strings.Repeat("e", MaxGA4EventNameLength+1), wantErr: true},
		{name: "exactly max length", eventName: "e" + strings.Repeat("x", MaxGA4EventNameLength-1), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGA4EventName(tt.eventName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGA4ParameterName(t *testing.T) {
	assert.NoError(t, ValidateGA4ParameterName("currency"))
	assert.Error(t, ValidateGA4ParameterName("1currency"))
	assert.Error(t, ValidateGA4ParameterName(""))
}

func TestValidateScrollPercentages(t *testing.T) {
	got, err := ValidateScrollPercentages([]int{75, 25, 50, 25})
	assert.NoError(t, err)
	assert.Equal(t, []int{25, 50, 75}, got)

	got, err = ValidateScrollPercentages([]int{0, 100})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 100}, got)

	_, err = ValidateScrollPercentages([]int{25, 101})
	assert.Error(t, err)

	_, err = ValidateScrollPercentages([]int{-1})
	assert.Error(t, err)

	_, err = ValidateScrollPercentages(nil)
	assert.Error(t, err)
}

func TestValidateFilterType(t *testing.T) {
	assert.NoError(t, ValidateFilterType(FilterEquals))
	assert.NoError(t, ValidateFilterType(FilterContains))
	assert.Error(t, ValidateFilterType("EQ"))
	assert.Error(t, ValidateFilterType(""))
}

func TestValidateTriggerType(t *testing.T) {
	assert.NoError(t, ValidateTriggerType(TriggerPageView))
	assert.NoError(t, ValidateTriggerType(TriggerCustomEvent))
	assert.Error(t, ValidateTriggerType("PAGEVIEW"))
	assert.Error(t, ValidateTriggerType(""))
}

func TestValidateTriggerIDs(t *testing.T) {
	assert.NoError(t, ValidateTriggerIDs([]string{"123", "456"}))
	assert.Error(t, ValidateTriggerIDs(nil))
	assert.Error(t, ValidateTriggerIDs([]string{"123", ""}))
}
