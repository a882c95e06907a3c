package wizard

import (
	"testing"

	"github.com/nfrund/safeonboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Toggle(t *testing.T) {
	t.Run("appends new values at the end", func(t *testing.T) {
		s := NewSelection("Therapy").Toggle("Shelter").Toggle("Legal Aid")
		assert.Equal(t, []string{"Therapy", "Shelter", "Legal Aid"}, s.Values())
	})

	t.Run("removal keeps the order of the rest", func(t *testing.T) {
		s := NewSelection("Therapy", "Shelter", "Legal Aid").Toggle("Shelter")
		assert.Equal(t, []string{"Therapy", "Legal Aid"}, s.Values())
		assert.False(t, s.Contains("Shelter"))
		assert.True(t, s.Contains("Legal Aid"))
	})

	t.Run("toggling twice restores contents and order", func(t *testing.T) {
		original := NewSelection("Adults", "Minors", "Women")
		for _, v := range []string{"Adults", "Minors", "Women", "Men"} {
			twice := original.Toggle(v).Toggle(v)
			if original.Contains(v) {
				// A removed value comes back at the end.
				assert.ElementsMatch(t, original.Values(), twice.Values())
			} else {
				assert.Equal(t, original.Values(), twice.Values())
			}
		}
	})

	t.Run("removing the last value empties the selection", func(t *testing.T) {
		s := NewSelection("Therapy").Toggle("Therapy")
		assert.Equal(t, 0, s.Len())
		assert.Nil(t, s.Values())
	})

	t.Run("original is never modified", func(t *testing.T) {
		s := NewSelection("Therapy")
		_ = s.Toggle("Shelter")
		_ = s.Toggle("Therapy")
		assert.Equal(t, []string{"Therapy"}, s.Values())
	})
}

func TestSelection_NewDropsDuplicates(t *testing.T) {
	s := NewSelection("Adults", "Minors", "Adults")
	assert.Equal(t, []string{"Adults", "Minors"}, s.Values())
	assert.Equal(t, 2, s.Len())
}

func TestSelection_ValuesReturnsCopy(t *testing.T) {
	s := NewSelection("Adults", "Minors")
	v := s.Values()
	v[0] = "changed"
	assert.Equal(t, []string{"Adults", "Minors"}, s.Values())
}

func TestFormData_Toggle(t *testing.T) {
	var d FormData

	d, err := d.Toggle(FieldServiceType, "Therapy")
	require.NoError(t, err)
	d, err = d.Toggle(FieldClientele, "Adults")
	require.NoError(t, err)

	assert.Equal(t, []string{"Therapy"}, d.ServiceType.Values())
	assert.Equal(t, []string{"Adults"}, d.Clientele.Values())

	d, err = d.Toggle(FieldServiceType, "Therapy")
	require.NoError(t, err)
	assert.Equal(t, 0, d.ServiceType.Len())
	assert.Equal(t, []string{"Adults"}, d.Clientele.Values())

	_, err = d.Toggle(FieldFirstName, "x")
	assert.ErrorIs(t, err, domain.ErrNotMultiSelect)

	_, err = d.Toggle("hobbies", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}
