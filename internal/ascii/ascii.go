package ascii

// Logo returns the banner printed by `indexingco init`.
func Logo() string {
	return `
 _           _           _
(_)_ __   __| | _____  _(_)_ __   __ _  ___ ___
| | '_ \ / _' |/ _ \ \/ / | '_ \ / _' |/ __/ _ \
| | | | | (_| |  __/>  <| | | | | (_| | (_| (_) |
|_|_| |_|\__,_|\___/_/\_\_|_| |_|\__, |\___\___/
                                 |___/
`
}
