package dto_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
)

func validForm() dto.ItemForm {
	return dto.ItemForm{Title: " Title1 ", Category: "Fiction", Quantity: "5", Size: "Large"}
}

func TestItemForm_ValidoSinRiwaya(t *testing.T) {
	in, err := validForm().Validate()

	require.NoError(t, err)
	assert.Equal(t, "Title1", in.Title)
	assert.Equal(t, 5, in.Quantity)
	assert.Nil(t, in.Riwaya, "riwaya vacía se guarda como ausente")
}

func TestItemForm_RiwayaPresente(t *testing.T) {
	f := validForm()
	f.Riwaya = "حفص"

	in, err := f.Validate()

	require.NoError(t, err)
	require.NotNil(t, in.Riwaya)
	assert.Equal(t, "حفص", *in.Riwaya)
}

func TestItemForm_CantidadNoNumerica(t *testing.T) {
	for _, q := range []json.Number{"", "abc", "1.5", "5 libros"} {
		f := validForm()
		f.Quantity = q

		in, err := f.Validate()

		require.Error(t, err, string(q))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, dto.ItemInput{}, in, "sin valores parciales")
	}
}

func TestItemForm_CantidadNegativa(t *testing.T) {
	f := validForm()
	f.Quantity = "-1"

	_, err := f.Validate()

	var verrs dto.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "quantity", verrs[0].Field)
}

func TestItemForm_CantidadFueraDeRangoEntero(t *testing.T) {
	for _, q := range []json.Number{"2147483648", "9223372036854775807"} {
		f := validForm()
		f.Quantity = q

		in, err := f.Validate()

		var verrs dto.ValidationErrors
		require.True(t, errors.As(err, &verrs), string(q))
		require.Len(t, verrs, 1)
		assert.Equal(t, "quantity", verrs[0].Field)
		assert.Equal(t, dto.ItemInput{}, in)
	}
}

func TestItemForm_CantidadMaxima(t *testing.T) {
	f := validForm()
	f.Quantity = "2147483647"

	in, err := f.Validate()

	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, in.Quantity)
}

func TestItemForm_ReportaTodosLosCampos(t *testing.T) {
	f := dto.ItemForm{Title: "  ", Category: "", Quantity: "x", Size: strings.Repeat("s", 101)}

	_, err := f.Validate()

	var verrs dto.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"title", "category", "size", "quantity"}, fields)
}

func TestQuantityRequest_Delta(t *testing.T) {
	d, err := dto.QuantityRequest{Action: "increase"}.Delta()
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = dto.QuantityRequest{Action: "decrease"}.Delta()
	require.NoError(t, err)
	assert.Equal(t, -1, d)

	_, err = dto.QuantityRequest{Action: "double"}.Delta()
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "otra-clave-larga"}.Validate())
	assert.Error(t, dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "corta"}.Validate())
	assert.Error(t, dto.ChangePasswordRequest{CurrentPassword: "admin1234", NewPassword: "admin1234"}.Validate())
	assert.Error(t, dto.ChangePasswordRequest{}.Validate())
}
