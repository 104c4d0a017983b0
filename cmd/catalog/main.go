// Command catalog serves the sunscreen product catalog API.
package main

import "SunCatalog/cmd/catalog/cmd"

func main() {
	cmd.Execute()
}
