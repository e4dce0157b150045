package rest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// El backend no siempre responde con la misma forma: a veces un arreglo pelado,
// a veces envuelto en {"data": [...]}, y los nombres de campo varían entre
// versiones. Estos helpers decodifican de forma tolerante.

// unwrapList devuelve los objetos de una respuesta de colección.
func unwrapList(raw json.RawMessage) ([]map[string]any, error) {
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("respuesta de colección con forma inesperada")
}

// unwrapObject devuelve el objeto de una respuesta de ítem, desenvolviendo
// {"data": {...}} si aplica.
func unwrapObject(raw json.RawMessage) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("respuesta de ítem con forma inesperada: %w", err)
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return inner, nil
	}
	return obj, nil
}

// pickString devuelve el primer valor no vacío entre los alias dados.
func pickString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s := strings.TrimSpace(cast.ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// pickInt devuelve el primer valor presente convertido a entero.
func pickInt(m map[string]any, keys ...string) int {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return cast.ToInt(v)
		}
	}
	return 0
}

// pickDecimal devuelve el primer valor presente como decimal (cero si no parsea).
func pickDecimal(m map[string]any, keys ...string) decimal.Decimal {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		if d, err := decimal.NewFromString(cast.ToString(v)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// pickTime parsea el primer timestamp presente. El backend mezcla ISO completo,
// fecha sola y epoch según el endpoint.
func pickTime(m map[string]any, keys ...string) (time.Time, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		if t, err := dateparse.ParseAny(cast.ToString(v)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func productFrom(m map[string]any) *entity.Product {
	return &entity.Product{
		ID:    pickString(m, "id", "_id", "productoId"),
		SKU:   strings.ToUpper(pickString(m, "sku", "codigo")),
		Name:  pickString(m, "nombre", "name", "descripcion"),
		Price: pickDecimal(m, "precio", "price", "precioUnitario"),
		Stock: pickInt(m, "stock", "existencias"),
	}
}

func terceroFrom(m map[string]any) *entity.Tercero {
	return &entity.Tercero{
		ID:                pickString(m, "id", "_id"),
		TipoTercero:       pickString(m, "tipoTercero", "tipo"),
		NombreRazonSocial: pickString(m, "nombreRazonSocial", "nombre", "razonSocial"),
		TipoDocumento:     pickString(m, "tipoDocumento"),
		NumeroDocumento:   pickString(m, "numeroDocumento", "documento"),
		CorreoElectronico: pickString(m, "correoElectronico", "correo", "email"),
		Telefono:          pickString(m, "telefono", "celular"),
	}
}

func partyFrom(m map[string]any) entity.PartyRef {
	return entity.PartyRef{
		ID:              pickString(m, "id", "_id", "terceroId", "clienteId"),
		Nombre:          pickString(m, "nombre", "nombreRazonSocial", "razonSocial"),
		NumeroDocumento: pickString(m, "numeroDocumento", "documento"),
	}
}

func lineItemFrom(m map[string]any) entity.LineItem {
	return entity.LineItem{
		ProductoID:     pickString(m, "productoId", "producto_id", "idProducto"),
		SKU:            strings.ToUpper(pickString(m, "sku", "codigo")),
		Nombre:         pickString(m, "nombre", "descripcion"),
		Cantidad:       pickInt(m, "cantidad", "qty"),
		PrecioUnitario: pickDecimal(m, "precioUnitario", "precio"),
		Subtotal:       pickDecimal(m, "subtotal"),
	}
}

func transactionFrom(m map[string]any) *entity.Transaction {
	tx := &entity.Transaction{
		ID:    pickString(m, "id", "_id"),
		Total: pickDecimal(m, "total"),
		Notas: pickString(m, "notas", "observaciones"),
	}
	if t, ok := pickTime(m, "fecha", "createdAt", "fechaEmision"); ok {
		tx.Fecha = t
	}
	if cliente, ok := m["cliente"].(map[string]any); ok {
		tx.Cliente = partyFrom(cliente)
	} else if proveedor, ok := m["proveedor"].(map[string]any); ok {
		tx.Cliente = partyFrom(proveedor)
	}
	if items, ok := m["items"].([]any); ok {
		for _, it := range items {
			if im, ok := it.(map[string]any); ok {
				tx.Items = append(tx.Items, lineItemFrom(im))
			}
		}
	}
	return tx
}
