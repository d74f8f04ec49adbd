package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListCases(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No cases yet")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %s — %s\n", item.ID, item.Title, item.Description)
	}
	return nil
}

// Show prompts for a case ID and prints that single case in full. The server
// exposes no per-case read route, so the case is resolved from the fetched
// list.
func (a *App) Show(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter case ID", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	items, err := a.api.ListCases(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, item := range items {
		if item.ID == id {
			printlnFn(item.Title)
			printlnFn(item.Description)
			printlnFn(fmt.Sprintf("Created: %s", item.CreatedAt.Format(time.RFC822)))
			printlnFn(fmt.Sprintf("Updated: %s", item.UpdatedAt.Format(time.RFC822)))
			return nil
		}
	}

	printlnFn("Case not found")
	return nil
}

func (a *App) Add(ctx context.Context) error {

	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	created, err := a.api.CreateCase(ctx, title, description)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Created case %s\n", created.ID)
	return nil
}

func (a *App) Edit(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter case ID", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	title, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	description, err := GetMultiline(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	updated, err := a.api.UpdateCase(ctx, id, title, description)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Updated case %s\n", updated.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter case ID", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.DeleteCase(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Case deleted")
	return nil
}
