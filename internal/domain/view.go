package domain

// Button é um botão de teclado inline; o payload é opaco para a superfície de chat
type Button struct {
	Label   string `json:"label"`
	Payload string `json:"payload"`
}

// Keyboard é uma lista de linhas de botões
type Keyboard [][]Button

func (k Keyboard) IsEmpty() bool {
	for _, row := range k {
		if len(row) > 0 {
			return false
		}
	}
	return true
}

// Render é o resultado de uma visão: texto HTML e teclado
type Render struct {
	Text     string
	Keyboard Keyboard
}

// Namespace separa as sessões de navegação de um mesmo operador
type Namespace string

const (
	NamespaceManual Namespace = "manual"
	NamespaceAuto   Namespace = "auto"
)

func (n Namespace) IsValid() bool {
	return n == NamespaceManual || n == NamespaceAuto
}

type ViewKind string

const (
	ViewSummary  ViewKind = "summary"
	ViewProducts ViewKind = "products"
)

// Cursor é a posição do operador dentro de um resultado: loja, página (a partir de 1) e visão
type Cursor struct {
	Store int      `json:"store"`
	Page  int      `json:"page"`
	View  ViewKind `json:"view"`
}

// InitialCursor aponta para o resumo da primeira loja
func InitialCursor() Cursor {
	return Cursor{Store: 0, Page: 1, View: ViewSummary}
}
