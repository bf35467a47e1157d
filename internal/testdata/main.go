package testdata

// Script is a small but complete script exercising every event kind. It fits
// an 80x24 terminal.
const Script = `audio: sound/track.ogg
credits:
  duration: 20s
  text: |
    >LIST PERSONNEL

    Operator
    Night Shift
art:
  - - "+------+"
    - "|  ()  |"
    - "+------+"
  - - "  /\\"
    - " /  \\"
    - "/____\\"
events:
  - at: 0
    kind: audio
  - at: 0
    text: "Forms FORM-29827281-12:"
    interval: 2s
  - at: 200
    text: "Test Assessment Report"
    interval: derive
  - at: 300
    kind: art
    frame: 1
  - at: 350
    kind: segment
    text: "Still "
    interval: 0.5
  - at: 400
    kind: segment
    text: "running"
    style: alert
  - at: 450
    kind: credits
  - at: 500
    kind: clear
  - at: 600
    kind: end
`

// GetScript returns Script as bytes.
func GetScript() []byte {
	return []byte(Script)
}
