package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNonEmpty(t *testing.T) {
	typ := NonEmpty()
	if err := typ.Validate("q1"); err != nil {
		t.Errorf("expected q1 to pass, got %v", err)
	}
	for _, bad := range []any{"", "   ", 3, nil} {
		if err := typ.Validate(bad); err == nil {
			t.Errorf("expected %#v to fail", bad)
		}
	}
}

func TestOneOf(t *testing.T) {
	typ, err := ParseType("(next | prev)")
	if err != nil {
		t.Fatal(err)
	}
	if typ.Name() != "(next|prev)" {
		t.Errorf("unexpected name %q", typ.Name())
	}
	if err := typ.Validate("prev"); err != nil {
		t.Errorf("prev should pass: %v", err)
	}
	if err := typ.Validate("other"); err == nil {
		t.Error("other should fail")
	}
}

func TestParseType_Unsupported(t *testing.T) {
	if _, err := ParseType("int"); err == nil {
		t.Error("expected error for int")
	}
	if _, err := ParseType("(a||b)"); err == nil {
		t.Error("expected error for empty option")
	}
}

func TestValidate_ReportsSortedKeys(t *testing.T) {
	s := Schema{
		"setToName": NonEmpty(),
		"fromName":  NonEmpty(),
		"setValue":  String(),
	}

	err := Validate(s, map[string]any{"setToName": "", "setValue": "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	keys := FailedKeys(err)
	if strings.Join(keys, ",") != "fromName,setToName" {
		t.Errorf("unexpected failed keys %v", keys)
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidate_Custom(t *testing.T) {
	known := map[string]bool{"q1": true}
	s := Schema{"gotoName": Custom("question", func(v any) error {
		if name, _ := v.(string); !known[name] {
			return ErrCustomValidation("unknown question")
		}
		return nil
	})}

	if err := Validate(s, Strings(map[string]string{"gotoName": "q1"})); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := Validate(s, Strings(map[string]string{"gotoName": "q9"})); err == nil {
		t.Error("expected unknown question to fail")
	}
}

func TestValidateFields_UnknownField(t *testing.T) {
	err := ValidateFields(Schema{}, map[string]any{}, "missing")
	if keys := FailedKeys(err); len(keys) != 1 || keys[0] != "missing" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestSchema_JSONRoundTrip(t *testing.T) {
	s := Schema{"gotoName": NonEmpty(), "note": String()}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var back Schema
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back["gotoName"].Name() != "nonempty" || back["note"].Name() != "string" {
		t.Errorf("unexpected schema %v", back)
	}
}

func TestSchema_YAML(t *testing.T) {
	var cfg struct {
		Extras Schema `yaml:"extras"`
	}
	src := "extras:\n  target: nonempty\n  mode: (a|b)\n"
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extras) != 2 || cfg.Extras["mode"].Name() != "(a|b)" {
		t.Errorf("unexpected extras %v", cfg.Extras)
	}

	bad := "extras:\n  target: float\n"
	if err := yaml.Unmarshal([]byte(bad), &cfg); err == nil {
		t.Error("expected error for unsupported type")
	}
}
