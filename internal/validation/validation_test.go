package validation

import (
	"strings"
	"testing"
)

func TestOneOf(t *testing.T) {
	allowed := []string{"text", "json"}
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "first allowed", value: "text", wantErr: false},
		{name: "second allowed", value: "json", wantErr: false},
		{name: "case insensitive", value: "JSON", wantErr: false},
		{name: "empty value", value: "", wantErr: false},
		{name: "not allowed", value: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := OneOf("QUANTUMMIND_OUTPUT", tt.value, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("OneOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "text, json") {
				t.Errorf("OneOf() error should list allowed values, got %q", err.Error())
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "seconds", value: "30s", wantErr: false},
		{name: "compound", value: "1m30s", wantErr: false},
		{name: "milliseconds", value: "500ms", wantErr: false},
		{name: "empty value", value: "", wantErr: false},
		{name: "zero", value: "0s", wantErr: true},
		{name: "negative", value: "-5s", wantErr: true},
		{name: "missing unit", value: "30", wantErr: true},
		{name: "garbage", value: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Duration("QUANTUMMIND_TIMEOUT", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Duration(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "true", want: true},
		{value: "TRUE", want: true},
		{value: "1", want: true},
		{value: "yes", want: true},
		{value: "false", want: false},
		{value: "0", want: false},
		{value: "no", want: false},
		{value: " true", want: true},
		{value: "false\t", want: false},
		{value: " yes ", want: true},
		{value: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := Bool("QUANTUMMIND_DRY_RUN", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Bool(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got, err := ParseBool(tt.value)
			if err != nil {
				t.Fatalf("ParseBool(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		errs := Errors{}
		if errs.HasErrors() {
			t.Errorf("HasErrors() = true, want false")
		}
		if errs.Error() != "" {
			t.Errorf("Error() = %q, want empty string", errs.Error())
		}
	})

	t.Run("with errors", func(t *testing.T) {
		errs := Errors{
			&Error{Field: "FIELD1", Message: "error 1"},
			&Error{Field: "FIELD2", Message: "error 2"},
		}
		if !errs.HasErrors() {
			t.Errorf("HasErrors() = false, want true")
		}
		errStr := errs.Error()
		if !strings.Contains(errStr, "FIELD1") || !strings.Contains(errStr, "FIELD2") {
			t.Errorf("Error() = %q, should contain both field names", errStr)
		}
	})

	t.Run("add skips nil", func(t *testing.T) {
		var errs Errors
		errs.Add(nil)
		errs.Add(Duration("FIELD", "soon"))
		errs.Add(OneOf("OTHER", "ok", []string{"ok"}))
		if len(errs) != 1 {
			t.Errorf("len(errs) = %d, want 1", len(errs))
		}
	})
}

func TestError_Error(t *testing.T) {
	t.Run("with remediation", func(t *testing.T) {
		err := &Error{
			Field:       "QUANTUMMIND_TIMEOUT",
			Value:       "soon",
			Message:     "invalid duration",
			Remediation: "Provide a positive duration",
		}
		errStr := err.Error()
		if !strings.Contains(errStr, "QUANTUMMIND_TIMEOUT") {
			t.Errorf("Error() should contain field name")
		}
		if !strings.Contains(errStr, "Remediation") {
			t.Errorf("Error() should contain remediation")
		}
	})

	t.Run("without remediation", func(t *testing.T) {
		err := &Error{
			Field:   "QUANTUMMIND_TIMEOUT",
			Value:   "soon",
			Message: "invalid duration",
		}
		if strings.Contains(err.Error(), "Remediation") {
			t.Errorf("Error() should not contain remediation when not set")
		}
	})
}
