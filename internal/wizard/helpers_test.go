package wizard

import (
	"context"
	"fmt"
	"sync"
)

// completeStep returns d with every required field of step filled in.
func completeStep(step int, d FormData) FormData {
	set := func(f Field, v any) {
		var err error
		d, err = d.With(f, v)
		if err != nil {
			panic(err)
		}
	}
	switch step {
	case 1:
		set(FieldTitle, "Dr")
		set(FieldFirstName, "Amina")
		set(FieldLastName, "Otieno")
		set(FieldGender, "Female")
		set(FieldIDPassportNumber, "A1234567")
		set(FieldEducationRank, "Master's Degree")
	case 2:
		set(FieldOrganizationName, "Safe Haven")
		set(FieldYearsOfExperience, "7")
		set(FieldClientCapacity, "11-25 clients per month")
		set(FieldHoursOfOperation, "24/7")
	case 3:
		set(FieldCountry, "Kenya")
		set(FieldCounty, "Nakuru")
		set(FieldTown, "Naivasha")
	case 4:
		set(FieldServiceType, []string{"Therapy"})
		set(FieldClientele, []string{"Adults"})
	case 5:
		set(FieldCredentials, &FileAttachment{Ref: "ref-cred", Name: "licence.pdf", Size: 1024})
	default:
		panic(fmt.Sprintf("no step %d", step))
	}
	return d
}

// gatedDecoder blocks each Decode until its ref is released.
type gatedDecoder struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls int
}

func newGatedDecoder() *gatedDecoder {
	return &gatedDecoder{gates: make(map[string]chan struct{})}
}

func (d *gatedDecoder) gate(ref string) chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	g, ok := d.gates[ref]
	if !ok {
		g = make(chan struct{})
		d.gates[ref] = g
	}
	return g
}

func (d *gatedDecoder) release(ref string) { close(d.gate(ref)) }

func (d *gatedDecoder) Decode(ctx context.Context, att FileAttachment) (string, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	// A superseded decode keeps running until released, so the stale
	// result really does arrive late.
	<-d.gate(att.Ref)
	return "data:image/png;base64," + att.Ref, nil
}
