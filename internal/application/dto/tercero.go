package dto

// TerceroRequest alta o edición de un tercero. Las reglas declarativas se
// validan con go-playground/validator.
type TerceroRequest struct {
	TipoTercero       string `json:"tipoTercero" validate:"required,oneof=Cliente Proveedor"`
	NombreRazonSocial string `json:"nombreRazonSocial" validate:"required,min=3"`
	TipoDocumento     string `json:"tipoDocumento" validate:"required,oneof=NIT CC CE RUC DNI"`
	NumeroDocumento   string `json:"numeroDocumento" validate:"required,min=6,max=20"`
	CorreoElectronico string `json:"correoElectronico" validate:"omitempty,email"`
	Telefono          string `json:"telefono" validate:"omitempty,min=6,max=15"`
}
