package models

import "fmt"

// PropertyDataType is the closed set of value types an ontology property
// may carry.
type PropertyDataType string

const (
	DataTypeString   PropertyDataType = "string"
	DataTypeInteger  PropertyDataType = "integer"
	DataTypeFloat    PropertyDataType = "float"
	DataTypeBoolean  PropertyDataType = "boolean"
	DataTypeDate     PropertyDataType = "date"
	DataTypeDatetime PropertyDataType = "datetime"
)

// ValidDataTypes contains every allowed property data type.
var ValidDataTypes = []PropertyDataType{
	DataTypeString,
	DataTypeInteger,
	DataTypeFloat,
	DataTypeBoolean,
	DataTypeDate,
	DataTypeDatetime,
}

// Ontology is the target knowledge-graph schema produced from a relational
// schema. Refinement never mutates an Ontology in place; it always produces
// a new value.
type Ontology struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Classes       []OntologyClass        `json:"classes"`
	Properties    []OntologyProperty     `json:"properties"`
	Relationships []OntologyRelationship `json:"relationships"`
	Metadata      map[string]any         `json:"metadata"`
}

// OntologyClass is a first-class domain object. ParentClass records a
// single-inheritance hierarchy and is informational only.
type OntologyClass struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Properties   []string `json:"properties"`
	ParentClass  string   `json:"parent_class,omitempty"`
	SourceTables []string `json:"source_tables"`
}

// OntologyProperty is an attribute carried by one or more classes. Range is
// set only for object-valued properties and names the target class.
type OntologyProperty struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	DataType    PropertyDataType `json:"data_type"`
	Domain      []string         `json:"domain"`
	Range       string           `json:"range,omitempty"`
	IsRequired  bool             `json:"is_required"`
	IsUnique    bool             `json:"is_unique"`
}

// OntologyRelationship links two classes. SourceForeignKey records the
// originating foreign key as a "table.column" path.
type OntologyRelationship struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	SourceClass      string      `json:"source_class"`
	TargetClass      string      `json:"target_class"`
	Cardinality      Cardinality `json:"cardinality"`
	InverseName      string      `json:"inverse_name,omitempty"`
	SourceForeignKey string      `json:"source_foreign_key,omitempty"`
}

// Class returns the class with the given name, or nil if absent.
func (o *Ontology) Class(name string) *OntologyClass {
	for i := range o.Classes {
		if o.Classes[i].Name == name {
			return &o.Classes[i]
		}
	}
	return nil
}

// Validate enforces the referential invariant: every class named by a
// relationship's source/target must exist in the class sequence, and every
// property name listed on a class must exist in the property sequence.
// A violating payload is rejected, never silently trimmed.
func (o *Ontology) Validate() error {
	classes := make(map[string]struct{}, len(o.Classes))
	for _, c := range o.Classes {
		classes[c.Name] = struct{}{}
	}
	props := make(map[string]struct{}, len(o.Properties))
	for _, p := range o.Properties {
		props[p.Name] = struct{}{}
	}

	for _, c := range o.Classes {
		for _, pname := range c.Properties {
			if _, ok := props[pname]; !ok {
				return fmt.Errorf("class %q lists unknown property %q", c.Name, pname)
			}
		}
	}

	for _, r := range o.Relationships {
		if _, ok := classes[r.SourceClass]; !ok {
			return fmt.Errorf("relationship %q references unknown source class %q", r.Name, r.SourceClass)
		}
		if _, ok := classes[r.TargetClass]; !ok {
			return fmt.Errorf("relationship %q references unknown target class %q", r.Name, r.TargetClass)
		}
	}

	return nil
}
