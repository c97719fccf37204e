package handler

type StatusResponse struct {
	Status           string   `json:"status"`
	Backend          string   `json:"backend"`
	Backends         []string `json:"backends"`
	Subscribers      int      `json:"subscribers"`
	SeenURLs         int64    `json:"seen_urls"`
	SeenFingerprints int64    `json:"seen_fingerprints"`
	Threshold        float64  `json:"threshold"`
	Sources          []string `json:"sources"`
}

type ConfigureRequest struct {
	Backend string `json:"backend"`
}

type ConfigureResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
