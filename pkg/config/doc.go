// Package config loads typed configuration structs from the environment
// using github.com/caarlos0/env, after optionally reading a .env file with
// github.com/joho/godotenv.
package config
