package multiversx

// transactionPayload is the slice of the chain API transaction resource the
// payment checks consume.
type transactionPayload struct {
	TxHash   string `json:"txHash"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Value    string `json:"value"`
	Status   string `json:"status"`
}

type accountPayload struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// vmQueryRequest is the gateway /vm-values/query body. Args are hex encoded.
type vmQueryRequest struct {
	SCAddress string   `json:"scAddress"`
	FuncName  string   `json:"funcName"`
	Args      []string `json:"args"`
}

type vmQueryResponse struct {
	Data struct {
		Data struct {
			ReturnData    []string `json:"returnData"`
			ReturnCode    string   `json:"returnCode"`
			ReturnMessage string   `json:"returnMessage"`
		} `json:"data"`
	} `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}
