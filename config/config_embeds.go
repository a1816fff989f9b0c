package config

import _ "embed"

//go:embed .gitignore
var GitIgnore string

//go:embed .env.example
var EnvExample string

//go:embed contracts/Counter.sol
var SampleContract string
