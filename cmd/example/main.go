package main

import (
	"fmt"

	"codexdb/pkg/core"
)

func main() {
	c := core.NewCatalog()
	defer c.Close()

	books := []struct {
		id            int
		title, author string
	}{
		{50, "O Guarani", "José de Alencar"},
		{30, "Dom Casmurro", "Machado de Assis"},
		{70, "Vidas Secas", "Graciliano Ramos"},
		{20, "Capitães da Areia", "Jorge Amado"},
		{40, "Macunaíma", "Mário de Andrade"},
	}
	for _, b := range books {
		c.Add(b.id, b.title, b.author)
	}

	fmt.Println("By ID:")
	for rec := range c.ByID() {
		fmt.Println(" ", rec)
	}

	rec, visits := c.SearchByID(40)
	fmt.Printf("\nSearch ID 40 -> %q after %d nodes\n", rec.Title, visits)

	c.DeleteByID(30)
	fmt.Println("\nAfter deleting ID 30, by title:")
	for rec := range c.ByTitle() {
		fmt.Println(" ", rec)
	}

	idH, titleH := c.Heights()
	fmt.Printf("\nHeights: id=%d title=%d\n", idH, titleH)
}
