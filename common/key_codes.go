package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyH uint32 = 72 // H key (ASCII)
	KeyR uint32 = 82 // R key (ASCII)

	Key1 uint32 = 49 // 1 key (ASCII)
	Key2 uint32 = 50 // 2 key (ASCII)
	Key3 uint32 = 51 // 3 key (ASCII)

	KeyMinus        uint32 = 45 // - key (ASCII)
	KeyEqual        uint32 = 61 // = key (ASCII), + when shifted
	KeyLeftBracket  uint32 = 91 // [ key (ASCII)
	KeyRightBracket uint32 = 93 // ] key (ASCII)

	KeyEnter      uint32 = 257 // Enter (GLFW)
	KeyKPSubtract uint32 = 333 // keypad - (GLFW)
	KeyKPAdd      uint32 = 334 // keypad + (GLFW)
)
