package response

type StatCard struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type DashboardResponse struct {
	CompanyID string     `json:"company_id"`
	Cards     []StatCard `json:"cards"`
}
