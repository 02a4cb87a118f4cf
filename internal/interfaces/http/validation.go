package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// pathID copia el parámetro :id; fiber lo devuelve apuntando al buffer de la petición,
// que se reutiliza en la siguiente.
func pathID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// bindBody parsea el JSON y aplica las reglas `validate`. Si falla ya respondió 400 y devuelve false.
func bindBody(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	return check(c, out)
}

// bindQuery igual que bindBody para parámetros de consulta.
func bindQuery(c *fiber.Ctx, out any) bool {
	if err := c.QueryParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
		return false
	}
	return check(c, out)
}

func check(c *fiber.Ctx, out any) bool {
	err := validate.Struct(out)
	if err == nil {
		return true
	}
	_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: describe(err)})
	return false
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
