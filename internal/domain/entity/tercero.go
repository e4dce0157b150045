package entity

// Tercero representa un cliente (ventas) o proveedor (compras).
// El backend publica /clientes; el front los expone como "terceros".
type Tercero struct {
	ID                string `json:"id"`
	TipoTercero       string `json:"tipoTercero"` // "Cliente" | "Proveedor"
	NombreRazonSocial string `json:"nombreRazonSocial"`
	TipoDocumento     string `json:"tipoDocumento"` // NIT, CC, CE, RUC, DNI
	NumeroDocumento   string `json:"numeroDocumento"`
	CorreoElectronico string `json:"correoElectronico"`
	Telefono          string `json:"telefono"`
}
