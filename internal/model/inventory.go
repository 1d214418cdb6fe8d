package model

// RawColumns é a ordem fixa das 21 colunas do export da Copart.
// A coluna N do arquivo sempre recebe o nome N desta lista; o texto do
// cabeçalho nunca é lido.
var RawColumns = []string{
	"url_detalhe",
	"lot_number",
	"year",
	"make",
	"model",
	"document_status",
	"vin",
	"category",
	"damage_type",
	"engine_status",
	"damage_severity",
	"title_status",
	"seller",
	"fipe_value",
	"vehicle_yard",
	"auction_date",
	"auction_yard",
	"sale_list_number",
	"lot_vaga",
	"current_bid",
	"buy_it_now_price",
}

// RawRecord é uma linha do export já associada aos nomes de RawColumns.
type RawRecord map[string]string

// NewRawRecord associa cada valor ao nome da coluna na mesma posição.
func NewRawRecord(fields []string) RawRecord {
	rec := make(RawRecord, len(RawColumns))
	for i, name := range RawColumns {
		if i < len(fields) {
			rec[name] = fields[i]
		}
	}
	return rec
}

// InventoryItem é a projeção exposta pela API. A ordem dos campos define a
// ordem das chaves no JSON.
type InventoryItem struct {
	LotNumber   string `json:"lot_number"`
	Year        string `json:"year"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Category    string `json:"category"`
	DamageType  string `json:"damage_type"`
	VehicleYard string `json:"vehicle_yard"`
	AuctionDate string `json:"auction_date"`
	CurrentBid  string `json:"current_bid"`
	FipeValue   string `json:"fipe_value"`
	URLDetalhe  string `json:"url_detalhe"`
}

// ServingMetadata é calculado a cada leitura do inventário, nunca persistido.
type ServingMetadata struct {
	LastUpdated   string `json:"last_updated"`
	TotalVehicles int    `json:"total_vehicles"`
	Source        string `json:"source"`
}
