package models

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type ShipsResponse struct {
	Ships []Ship `json:"ships"`
	Total int    `json:"total"`
}

type FleetsResponse struct {
	Fleets []Fleet `json:"fleets"`
}

type TasksResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

type UpdatesResponse struct {
	Updates []Update `json:"updates"`
}
