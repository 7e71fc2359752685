package ir

import "strings"

// Field is one entry of a type definition: a name plus an optional type.
type Field struct {
	Name string  `json:"name" yaml:"name"`
	Type *string `json:"type,omitempty" yaml:"type,omitempty"` // nil when untyped
}

// TypeDef is one parsed `type Name { ... }` declaration.
// Fields keep source order; duplicate names are permitted.
type TypeDef struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// TypedField returns a field annotated with typ.
func TypedField(name, typ string) Field {
	return Field{Name: name, Type: &typ}
}

// UntypedField returns a field without a type annotation.
func UntypedField(name string) Field {
	return Field{Name: name}
}

// HasType reports whether the field carries a type annotation.
func (f Field) HasType() bool {
	return f.Type != nil
}

// TypeName returns the annotated type, or "" when the field is untyped.
// Use HasType to distinguish an absent type.
func (f Field) TypeName() string {
	if f.Type == nil {
		return ""
	}
	return *f.Type
}

// String renders the field in source syntax.
func (f Field) String() string {
	if f.Type == nil {
		return f.Name
	}
	return f.Name + ": " + *f.Type
}

// String renders the definition back in source syntax, with a trailing
// comma after the last field. The output parses to an equal TypeDef.
func (td TypeDef) String() string {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(td.Name)
	b.WriteString(" {")
	for _, f := range td.Fields {
		b.WriteByte(' ')
		b.WriteString(f.String())
		b.WriteByte(',')
	}
	if len(td.Fields) > 0 {
		b.WriteByte(' ')
	}
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether two fields have the same name and the same
// (possibly absent) type.
func (f Field) Equal(other Field) bool {
	if f.Name != other.Name || f.HasType() != other.HasType() {
		return false
	}
	return f.TypeName() == other.TypeName()
}

// Equal reports whether two definitions are structurally identical,
// including field order.
func (td TypeDef) Equal(other TypeDef) bool {
	if td.Name != other.Name || len(td.Fields) != len(other.Fields) {
		return false
	}
	for i := range td.Fields {
		if !td.Fields[i].Equal(other.Fields[i]) {
			return false
		}
	}
	return true
}

// Canonical converts the field to an IRObject. An untyped field has no
// "type" key.
func (f Field) Canonical() IRObject {
	obj := IRObject{"name": IRString(f.Name)}
	if f.Type != nil {
		obj["type"] = IRString(*f.Type)
	}
	return obj
}

// Canonical converts the definition to an IRObject for canonical
// serialization.
func (td TypeDef) Canonical() IRObject {
	fields := make(IRArray, len(td.Fields))
	for i, f := range td.Fields {
		fields[i] = f.Canonical()
	}
	return IRObject{
		"name":   IRString(td.Name),
		"fields": fields,
	}
}
