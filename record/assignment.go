package record

import "fmt"

// Assignment sets one field to a literal, as in `set lastname = 'Lee'`
type Assignment struct {
	Field Field
	Value string
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s = '%s'", a.Field, a.Value)
}

// Apply parses every assignment into fields, stopping at the first error
func Apply(fields *Fields, assignments []Assignment) error {
	for _, a := range assignments {
		if err := a.Field.Set(fields, a.Value); err != nil {
			return err
		}
	}
	return nil
}
