package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateRunID gera o identificador curto de uma execução de relatório, usado nos payloads de navegação
func GenerateRunID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
