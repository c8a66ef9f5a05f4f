// Package samples holds the canned descriptions and diagrams offered in the UI.
package samples

import "github.com/kdduha/uml-generator/internal/models"

// TestDiagram is loaded by the "Test Diagram Rendering" action.
const TestDiagram = "user_profile"

var Descriptions = []models.Sample{
	{Name: "basic_user", Text: "Create a User class with name, email attributes and login(), logout() methods"},
	{Name: "inheritance", Text: "Create Animal class with name attribute. Dog and Cat classes inherit from Animal."},
	{Name: "library_system", Text: "Create Library with books list. Book class has title, author, isbn. User can borrow books."},
	{Name: "ecommerce", Text: "Create Product with name, price. Customer has cart and can place orders."},
	{Name: "school", Text: "Create Student with name, id. Teacher with subject. Course connects students and teachers."},
}

var Diagrams = []models.Sample{
	{Name: "user_profile", Text: `classDiagram
    class User {
        +userId : String
        +name : String
        +email : String
        +login() : Boolean
        +logout() : void
    }

    class Profile {
        +avatar : String
        +bio : String
        +preferences : Object
        +updateProfile() : void
    }

    User "1" -- "1" Profile : has`},
	{Name: "animal_hierarchy", Text: `classDiagram
    class Animal {
        +name : String
        +age : Integer
        +makeSound() : void
        +move() : void
    }

    class Dog {
        +breed : String
        +bark() : void
        +fetch() : void
    }

    class Cat {
        +color : String
        +meow() : void
        +hunt() : void
    }

    Animal <|-- Dog
    Animal <|-- Cat`},
}

func Description(name string) (string, bool) {
	return lookup(Descriptions, name)
}

func Diagram(name string) (string, bool) {
	return lookup(Diagrams, name)
}

func lookup(list []models.Sample, name string) (string, bool) {
	for _, s := range list {
		if s.Name == name {
			return s.Text, true
		}
	}
	return "", false
}
