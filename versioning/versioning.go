package versioning

const (
	ApiVersion = "1.0.0"        // API version shared by the codec server and its clients.
	Header     = "Base58-Codec" // Server header of the codec API.
)
