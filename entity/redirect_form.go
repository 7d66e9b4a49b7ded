package entity

// FormInput is one hidden input of a gateway redirect form.
type FormInput struct {
	Name  string
	Value string
}

// RedirectForm is the form the gateway asks the client to submit next.
type RedirectForm struct {
	Action string
	Inputs []FormInput
}

// Values collapses the inputs into a field set; the last occurrence of a name wins.
func (r *RedirectForm) Values() Fields {
	fields := make(Fields, len(r.Inputs))
	for _, input := range r.Inputs {
		fields[input.Name] = input.Value
	}
	return fields
}
