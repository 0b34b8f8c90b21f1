package snippet

// Device is a named client registered under a user account.
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"createdAt"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Credentials is the body of both /auth/login and /auth/signup.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the opaque bearer token handed out by the server.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Selection is the device this client acts as.
type Selection struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

func (s Selection) IsZero() bool {
	return s.DeviceID == ""
}

// Label prefers the device name and falls back to the id.
func (s Selection) Label() string {
	if s.DeviceName != "" {
		return s.DeviceName
	}
	return s.DeviceID
}
