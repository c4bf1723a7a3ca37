// Package requerimiento scales a recipe to a milk volume and checks the
// result against a stock snapshot. It has no side effects.
package requerimiento

import (
	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requerimiento is the need for one recipe ingredient at a given volume.
type Requerimiento struct {
	MaterialID     *uuid.UUID
	MaterialNombre string
	Unidad         string
	Necesario      decimal.Decimal
	Disponible     decimal.Decimal
	Insuficiente   bool
}

// Resultado is the full report for one (recipe, volume) pair.
type Resultado struct {
	VolumenLeche      decimal.Decimal
	LecheDisponible   decimal.Decimal
	LecheInsuficiente bool
	Requerimientos    []Requerimiento
}

// HayFaltantes reports whether any ingredient is short. Milk is not included.
func (r Resultado) HayFaltantes() bool {
	for _, req := range r.Requerimientos {
		if req.Insuficiente {
			return true
		}
	}
	return false
}

// PuedeLanzar is true only for a positive volume with no ingredient and no
// milk shortage.
func (r Resultado) PuedeLanzar() bool {
	return r.VolumenLeche.IsPositive() && !r.LecheInsuficiente && !r.HayFaltantes()
}

// LecheDisponible is the quantity of the first milk material in stock, in
// the order given (the catalog lists by name). Other milk rows are ignored;
// zero when there is none.
func LecheDisponible(stock []model.MateriaPrima) decimal.Decimal {
	for _, m := range stock {
		if m.Tipo == model.TipoLeche {
			return m.Cantidad
		}
	}
	return decimal.Zero
}

// Calcular computes ingredient requirements for volumen liters of milk.
// A volume of zero or less yields no requirements.
func Calcular(receta model.Receta, volumen decimal.Decimal, stock []model.MateriaPrima) Resultado {
	porID := make(map[uuid.UUID]decimal.Decimal, len(stock))
	for _, m := range stock {
		porID[m.ID] = m.Cantidad
	}
	leche := LecheDisponible(stock)

	res := Resultado{
		VolumenLeche:      volumen,
		LecheDisponible:   leche,
		LecheInsuficiente: leche.LessThan(volumen),
		Requerimientos:    []Requerimiento{},
	}
	if !volumen.IsPositive() {
		return res
	}

	for _, ing := range receta.Ingredientes {
		necesario := ing.CantidadPorLitro.Mul(volumen)
		disponible := decimal.Zero
		if ing.MaterialID != nil {
			if q, ok := porID[*ing.MaterialID]; ok {
				disponible = q
			}
		}
		res.Requerimientos = append(res.Requerimientos, Requerimiento{
			MaterialID:     ing.MaterialID,
			MaterialNombre: ing.MaterialNombre,
			Unidad:         ing.Unidad,
			Necesario:      necesario,
			Disponible:     disponible,
			Insuficiente:   disponible.LessThan(necesario),
		})
	}
	return res
}
